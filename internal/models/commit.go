package models

// CommitActivityPoint is one day of commit activity.
// Date is formatted as YYYY-MM-DD.
type CommitActivityPoint struct {
	Date    string `json:"date"`
	Commits int    `json:"commits"`
}
