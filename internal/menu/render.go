package menu

import (
	"fmt"
	"strings"

	"github.com/m3rciful/rosterbot/internal/domain"
)

// For returns the operator or the user menu.
func For(operator bool) string {
	if operator {
		return Operator
	}
	return User
}

// SenderID renders the reply to /myid.
func SenderID(id int64) string {
	return fmt.Sprintf("Your Telegram ID: %d", id)
}

// Profile renders the reply to /myprofile.
func Profile(u domain.User) string {
	return fmt.Sprintf("Full name: %s\nEmail: %s\nPhone number: %s", u.FullName, u.Email, u.PhoneNumber)
}

// Promoted confirms a promotion.
func Promoted(u domain.User) string {
	return u.FullName + " has been promoted!"
}

// PickerLabel is the button text for a user in the promote and remove menus.
func PickerLabel(u domain.User) string {
	return fmt.Sprintf("%s ( ID: %d )", u.FullName, u.SenderID)
}

// Listing renders one page of the user list.
func Listing(users []domain.User) string {
	if len(users) == 0 {
		return NoUsers
	}
	var b strings.Builder
	for _, u := range users {
		fmt.Fprintf(&b, "ID: %d\nFull Name: %s\nEmail: %s\nPhone number: %s\n\n---\n\n",
			u.SenderID, u.FullName, u.Email, u.PhoneNumber)
	}
	return strings.TrimRight(b.String(), "\n")
}
