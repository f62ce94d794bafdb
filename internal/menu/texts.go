// Package menu holds the fixed texts the bot replies with.
package menu

const (
	Welcome    = "Welcome new user!\n\nPlease register below"
	AskName    = "Enter your full name:"
	AskEmail   = "Enter your email address:"
	AskPhone   = "Enter your phone number"
	Refusal    = "You cannot access that command."
	Failure    = "Something went wrong, please try again later."
	NotFound   = "User not found"
	Removed    = "User has been removed!"
	NoUsers    = "No registered users."
	PickRemove = "Choose the user you would like to remove:"
	PickPromo  = "Choose the user you would like to promote:"
	PrevLabel  = "Previous"
	NextLabel  = "Next"
	SlowDown   = "Too many requests. Please send that again in a moment."
)

// Operator is the menu shown to operators.
const Operator = "Welcome to the Admin Panel\n\n\n" +
	"Here are the commands you can use:\n\n" +
	"/listusers - List all users\n" +
	"/promote - Promote a user to admin\n" +
	"/remove - Remove a user\n" +
	"/commands - List commands you can use"

// User is the menu shown to registered users.
const User = "Welcome to the User Panel\n\n\n" +
	"Here are the commands you can use:\n\n" +
	"/myprofile - View your profile\n" +
	"/myid - Get your telegram ID\n" +
	"/commands - List commands you can use"
