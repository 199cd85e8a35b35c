package future

import "github.com/google/uuid"

// uniqueToken produces the default instance_key: a token that makes every
// instance unique, so that two futures constructed without an explicit
// semantic instance key never accidentally coalesce.
func uniqueToken() string {
	return uuid.NewString()
}
