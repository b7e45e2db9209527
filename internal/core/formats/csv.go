package formats

import (
	"github.com/JonMunkholm/tohands-inventory/internal/core"
)

func init() {
	registerCSV()
}

func registerCSV() {
	core.Register(core.ExportFormat{
		Key:         core.DefaultFormat,
		Label:       "Download CSV File",
		Extension:   "csv",
		ContentType: core.CSVContentType,
		Write:       core.WriteCSV,
	})
}
