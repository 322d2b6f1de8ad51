package source

// Sheet is an income plus expense rows loaded from a file or flags.
// Amounts stay as text so the wizard applies its own validation.
type Sheet struct {
	Income   string
	Expenses []Row
}

// Row is one expense line of a sheet.
type Row struct {
	Label string
	Daily string
}

// rawSheet mirrors the on-disk layout. Amounts may be numbers or strings.
type rawSheet struct {
	Income   any      `toml:"income" json:"income"`
	Expenses []rawRow `toml:"expenses" json:"expenses"`
}

type rawRow struct {
	Label string `toml:"label" json:"label"`
	Daily any    `toml:"daily" json:"daily"`
}
