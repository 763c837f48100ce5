// Package models defines the domain model shared by the API tier and
// the client-side persistence facade.
package models

// ItemStatus represents the lifecycle state of a lost/found report.
type ItemStatus string

const (
	StatusLost      ItemStatus = "LOST"
	StatusFound     ItemStatus = "FOUND"
	StatusReclaimed ItemStatus = "RECLAIMED"
)

// Valid reports whether the status is one of the known states.
func (s ItemStatus) Valid() bool {
	switch s {
	case StatusLost, StatusFound, StatusReclaimed:
		return true
	}
	return false
}

// Category classifies a reported item.
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryDocuments   Category = "Documents"
	CategoryClothing    Category = "Clothing"
	CategoryWallets     Category = "Wallets/Bags"
	CategoryOthers      Category = "Others"
)

// Valid reports whether the category is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryElectronics, CategoryDocuments, CategoryClothing, CategoryWallets, CategoryOthers:
		return true
	}
	return false
}

// Categories lists every known category in display order.
var Categories = []Category{
	CategoryElectronics,
	CategoryDocuments,
	CategoryClothing,
	CategoryWallets,
	CategoryOthers,
}

// CampusLocations is the fixed list of campus spots a report or a
// preferred meeting point can reference.
var CampusLocations = []string{
	"Main Gate",
	"Faculty of Engineering",
	"Faculty of Law",
	"Faculty of Social Sciences",
	"College of Medicine",
	"University Library",
	"Student Union Building",
	"Sports Complex",
	"Ugbowo Hostel A",
	"Ugbowo Hostel B",
	"Cafeteria",
	"ICT Centre",
}

// AdminID identifies the centralized admin desk account. Messages sent
// to this id land in the moderation inbox.
const AdminID = "aau-admin-desk"

// AdminEmail is the email the admin desk account signs in with.
const AdminEmail = "desk@aau.edu.ng"

// AdminName is the display name of the admin desk account.
const AdminName = "AAU Lost & Found Desk"

// Role separates the admin desk from regular members.
type Role string

const (
	RoleMember Role = "MEMBER"
	RoleAdmin  Role = "ADMIN"
)
