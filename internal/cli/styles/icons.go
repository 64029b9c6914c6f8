package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconVersion   = "\uf02b" // tag
	IconGitBranch = "\ue725" // git branch
	IconCalendar  = "\uf073" // calendar
	IconGo        = "\ue627" // go gopher
	IconGithub    = "\uf09b" // github
	IconGlobe     = "\uf0ac" // web
	IconArrow     = "\uf061" // arrow right
	IconCheck     = "\uf00c" // check
	IconX         = "\uf00d" // x
	IconDatabase  = "\uf1c0" // database
	IconPin       = "\uf08d" // thumb tack

	IconSessionStack = "\uf24d" // clone/stack
)
