package event

type KeySym int

const (
	KSymNone KeySym = iota

	// let ascii codes keep their values (adding 256 ensures gap)
	KSym_dummy_ KeySym = 256 + iota

	KSymBackspace
	KSymDelete
	KSymReturn
	KSymEscape
	KSymLeft
	KSymRight
	KSymUp
	KSymDown
	KSymHome
	KSymEnd
	KSymPageUp
	KSymPageDown
)
