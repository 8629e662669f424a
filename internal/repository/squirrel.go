package repository

import sq "github.com/Masterminds/squirrel"

// psql builds account and agent statements with PostgreSQL dollar placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
