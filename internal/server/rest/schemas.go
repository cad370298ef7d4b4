package rest

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"github.com/dmitrijs2005/itemkeeper/internal/server/services"
)

type UserPost struct {
	Login *string `json:"login"`
	Name  *string `json:"name"`
}

func (p UserPost) draft() (services.UserDraft, error) {
	if p.Login == nil {
		return services.UserDraft{}, fmt.Errorf("%w: login is required", common.ErrorValidation)
	}
	if p.Name == nil {
		return services.UserDraft{}, fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	return services.UserDraft{Login: *p.Login, Name: *p.Name}, nil
}

type UserDB struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Name  string `json:"name"`
}

func userDB(u *models.User) UserDB {
	return UserDB{ID: u.ID, Login: u.Login, Name: u.Name}
}

// ItemPost creates an item; weight defaults to 0.
type ItemPost struct {
	Title  *string  `json:"title"`
	Weight *float64 `json:"weight"`
}

func (p ItemPost) draft() (services.ItemDraft, error) {
	if p.Title == nil {
		return services.ItemDraft{}, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	d := services.ItemDraft{Title: *p.Title}
	if p.Weight != nil {
		d.Weight = *p.Weight
	}
	return d, nil
}

type ItemDB struct {
	ID      int64     `json:"id"`
	Title   string    `json:"title"`
	Weight  float64   `json:"weight"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
	UserID  int64     `json:"user_id"`
}

func itemDB(i *models.Item) ItemDB {
	return ItemDB{
		ID:      i.ID,
		Title:   i.Title,
		Weight:  i.Weight,
		Created: i.Created,
		Updated: i.Updated,
		UserID:  i.UserID,
	}
}
