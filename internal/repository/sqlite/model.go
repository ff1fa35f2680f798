package sqlite

// Task is the flat row stored in the tasks table.
// Timestamps are epoch seconds and Time is the accumulated second count.
type Task struct {
	Label     string
	Time      int32
	CreatedOn int32
	BeginDt   int32
	EndDt     int32
	State     string
}
