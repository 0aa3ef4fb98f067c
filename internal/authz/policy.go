// Package authz maps roles to their fixed permission sets and navigation
// menus. Both are static configuration: lookups are total for any string and
// an unknown role resolves to no permissions and no navigation.
package authz

import "github.com/restro-pos/gateway/internal/enum"

// PermissionSet is the fixed capability grid for one role.
type PermissionSet struct {
	ManageUsers      bool `json:"canManageUsers"`
	ManageRestaurant bool `json:"canManageRestaurant"`
	ManageTables     bool `json:"canManageTables"`
	ManageMenu       bool `json:"canManageMenu"`
	CreateOrders     bool `json:"canCreateOrders"`
	UpdateOrders     bool `json:"canUpdateOrders"`
	DeleteOrders     bool `json:"canDeleteOrders"`
	ViewOrders       bool `json:"canViewOrders"`
}

// NavItem is one entry in a role's ordered navigation menu.
type NavItem struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Icon string `json:"icon"`
}

var rolePermissions = map[string]PermissionSet{
	enum.RoleManager: {
		ManageUsers:      true,
		ManageRestaurant: true,
		ManageTables:     true,
		ManageMenu:       true,
		CreateOrders:     true,
		UpdateOrders:     true,
		DeleteOrders:     true,
		ViewOrders:       true,
	},
	enum.RoleWaiter: {
		CreateOrders: true,
		ViewOrders:   true,
	},
	enum.RoleChef: {
		UpdateOrders: true,
		ViewOrders:   true,
	},
	enum.RoleCashier: {
		UpdateOrders: true,
		ViewOrders:   true,
	},
}

var roleNavigation = map[string][]NavItem{
	enum.RoleManager: {
		{Name: "Restaurants", Path: "/restaurants", Icon: "🏢"},
		{Name: "Users", Path: "/users", Icon: "👥"},
		{Name: "Tables", Path: "/tables", Icon: "🪑"},
		{Name: "Menu Categories", Path: "/menu-categories", Icon: "📋"},
		{Name: "Menu Items", Path: "/menu-items", Icon: "🍕"},
		{Name: "Orders", Path: "/orders", Icon: "📝"},
		{Name: "Order Items", Path: "/order-items", Icon: "🛒"},
		{Name: "Kitchen Orders", Path: "/kitchen-orders", Icon: "👨‍🍳"},
	},
	enum.RoleWaiter: {
		{Name: "Tables", Path: "/tables", Icon: "🪑"},
		{Name: "Menu Items", Path: "/menu-items", Icon: "🍕"},
		{Name: "Orders", Path: "/orders", Icon: "📝"},
		{Name: "Order Items", Path: "/order-items", Icon: "🛒"},
	},
	enum.RoleChef: {
		{Name: "Kitchen Orders", Path: "/kitchen-orders", Icon: "👨‍🍳"},
		{Name: "Orders", Path: "/orders", Icon: "📝"},
	},
	enum.RoleCashier: {
		{Name: "Tables", Path: "/tables", Icon: "🪑"},
		{Name: "Orders", Path: "/orders", Icon: "📝"},
	},
}

// PermissionsFor returns the permission set for role. Unknown roles get the
// zero set.
func PermissionsFor(role string) PermissionSet {
	return rolePermissions[role]
}

// NavigationFor returns the ordered navigation menu for role. Unknown roles
// get an empty menu.
func NavigationFor(role string) []NavItem {
	return roleNavigation[role]
}
