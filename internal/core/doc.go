// Package core provides the business logic for building a Tohands inventory file.
//
// A visitor fills in one product at a time. Each valid submission becomes an
// [InventoryRow] appended to the visitor's [InventoryTable], which lives in a
// [Session] kept by a [SessionStore]. The table can be downloaded at any time
// in every registered [ExportFormat]; the CSV layout matches what the Tohands
// inventory import expects.
//
// # Service
//
// [Service] is the entry point used by the web layer:
//
//   - [Service.OpenSession] finds the visitor's session or starts a new one.
//   - [Service.AddProduct] validates a [ProductForm] and appends the row.
//   - [Service.View] returns the table and consumes the one-time notice.
//   - [Service.Export] renders the table through the export registry.
//
// # Session Stores
//
// [MemoryStore] keeps sessions in process and is swept by
// [Service.StartSessionSweeper]. [RedisStore] shares sessions between
// instances and lets Redis expire idle keys. Both expire sessions after the
// configured idle timeout; nothing outlives that.
//
// # Export Registry
//
// Formats are registered at init time using [Register], normally by blank
// importing the formats package:
//
//	core.Register(ExportFormat{
//	    Key:         "csv",
//	    Label:       "Download CSV File",
//	    ContentType: CSVContentType,
//	    Write:       WriteCSV,
//	})
//
// # Error Codes Reference
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Users can quote the code to support staff.
//
//	VAL001 - Quantity must be a whole number
//	         Patterns: "must be a whole number"
//	VAL002 - Invalid number format detected
//	         Patterns: "invalid number"
//	VAL003 - Prices and quantity cannot be negative
//	         Patterns: "must not be negative"
//
//	FORM001 - The submitted form is too large
//	          Patterns: "request body too large"
//	FORM002 - The request could not be read
//	          Patterns: "invalid request body"
//
//	SES001 - Your session has expired
//	         Patterns: "session not found"
//	SES002 - Session store unreachable or failing
//	         Patterns: "connection refused", "session store"
//
//	EXP001 - This download format is not available
//	         Patterns: "unknown export format"
//	EXP002 - The server is busy preparing other downloads
//	         Patterns: "too many exports"
//
//	REQ001 - Request was cancelled
//	         Patterns: "context canceled"
//	REQ002 - Request timed out
//	         Patterns: "context deadline exceeded"
//
//	RATE001 - Too many requests
//	          Patterns: "rate limit"
//
//	ERR000 - An unexpected error occurred (no pattern matched)
//
// Patterns are matched case-insensitively and the first match wins. For
// ERR000, check the application logs for the original error.
package core
