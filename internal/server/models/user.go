// Package models defines server-side data models persisted in the database.
package models

import (
	"fmt"
	"unicode/utf8"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
)

// Column limits shared by validation and the migrations.
const (
	MaxLoginLen = 20
	MaxNameLen  = 30
	MaxTitleLen = 30
)

// User is a row of the "user" table. Login doubles as the bearer credential.
type User struct {
	ID    int64
	Login string
	Name  string
}

// Validate checks the column limits before the record reaches the store.
func (u *User) Validate() error {
	if u.Login == "" {
		return fmt.Errorf("%w: login is required", common.ErrorValidation)
	}
	if err := checkLen("login", u.Login, MaxLoginLen); err != nil {
		return err
	}
	return checkLen("name", u.Name, MaxNameLen)
}

func checkLen(field, value string, max int) error {
	if n := utf8.RuneCountInString(value); n > max {
		return fmt.Errorf("%w: %s is %d characters, at most %d allowed", common.ErrorValidation, field, n, max)
	}
	return nil
}
