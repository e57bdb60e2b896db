// Package todo holds the task list, its display order and its persisted form.
//
// The list is stored under a single storage key as a JSON array, in
// insertion order:
//
//	[
//	  {
//	    "id": "6f1c2b4e-8a57-4d0e-9b7e-2f4a1c3d5e6f",
//	    "text": "Buy milk",
//	    "completed": false,
//	    "priority": "high",
//	    "createdAt": "2024-01-01T09:30:00.000Z"
//	  }
//	]
//
// # Loading
//
// Each record is validated against the embedded task.schema.json before it is
// converted to a Task. Records that fail validation, or that repeat an id, are
// dropped; a payload that is not a JSON array is discarded entirely. Neither
// case is an error for the caller of Open.
//
// createdAt may be an ISO-8601 string, or epoch milliseconds given as a
// number or a digit string. It is always written back as ISO-8601 UTC with
// millisecond precision.
//
// # Priority
//
//   - "high"
//   - "medium"
//   - "low"
//   - "none" (default)
//
// # Display Order
//
// Sorted orders incomplete tasks before completed ones, then by priority,
// then newest first. The stored order is never changed by sorting.
package todo
