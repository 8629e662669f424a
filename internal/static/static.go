package static

import _ "embed"

// AccountsHTML is the html/template source for the account listing pages.
//
//go:embed accounts.html
var AccountsHTML string

// IndexHTML contains the embedded index.html landing page.
//
//go:embed index.html
var IndexHTML string
