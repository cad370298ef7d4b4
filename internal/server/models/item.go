package models

import "time"

// Item is a row of the "item" table. UserID, Created and Updated are
// assigned by the server, never by the client.
type Item struct {
	ID      int64
	Title   string
	Weight  float64
	Created time.Time
	Updated time.Time
	UserID  int64
}

func (i *Item) Validate() error {
	return checkLen("title", i.Title, MaxTitleLen)
}
