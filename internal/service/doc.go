// Package service contains the use cases of the pizza service: registration
// and login, account management, franchise and store management, the menu
// and order placement.
//
// Services depend on the interfaces in internal/store, never on a concrete
// database. Authorization is decided here: a refused operation is returned
// as a *domain.AccessError whose message is shown to the client, while the
// franchise listing applies domain.VisibleFranchises and never fails.
package service
