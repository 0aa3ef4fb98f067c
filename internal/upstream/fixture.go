package upstream

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/restro-pos/gateway/internal/domain"
)

// Canned dataset served to offline sessions. Shapes mirror the backend's
// records so screens render identically with or without a live backend.

var fixtureUsers = []domain.User{
	{UserID: 3154, UserName: "admin", UserRole: "manager", RestaurantID: 1},
	{UserID: 3178, UserName: "23010101064", UserRole: "manager", RestaurantID: 1},
	{UserID: 3179, UserName: "230101011", UserRole: "waiter", RestaurantID: 1},
	{UserID: 3183, UserName: "240101016", UserRole: "chef", RestaurantID: 1},
	{UserID: 1, UserName: "testuser", UserRole: "manager", RestaurantID: 1},
}

var fixtureRestaurants = []domain.Restaurant{
	{RestaurantID: 1, RestaurantName: "Demo Restaurant", RestaurantAddress: "1 Demo Street"},
}

var fixtureTables = []domain.Table{
	{TableID: 1, TableNumber: 1, TableCapacity: 4, TableStatus: "occupied", RestaurantID: 1},
	{TableID: 2, TableNumber: 2, TableCapacity: 4, TableStatus: "free", RestaurantID: 1},
	{TableID: 3, TableNumber: 3, TableCapacity: 4, TableStatus: "free", RestaurantID: 1},
	{TableID: 95, TableNumber: 888, TableCapacity: 6, TableStatus: "free", RestaurantID: 1},
	{TableID: 438, TableNumber: 112, TableCapacity: 2, TableStatus: "free", RestaurantID: 1},
	{TableID: 498, TableNumber: 5, TableCapacity: 4, TableStatus: "free", RestaurantID: 1},
}

var fixtureCategories = []domain.MenuCategory{
	{MenuCategoryID: 1, MenuCategoryName: "DEMOABC", MenuCategoryDescription: "Demo Category", RestaurantID: 1},
	{MenuCategoryID: 2, MenuCategoryName: "VIDESHI", MenuCategoryDescription: "Foreign Food", RestaurantID: 1},
	{MenuCategoryID: 3, MenuCategoryName: "CHINESE", MenuCategoryDescription: "Chinese Cuisine", RestaurantID: 1},
	{MenuCategoryID: 65, MenuCategoryName: "TEST BY TIRTH", MenuCategoryDescription: "Testing", RestaurantID: 1},
	{MenuCategoryID: 300, MenuCategoryName: "DOSA", MenuCategoryDescription: "South Indian", RestaurantID: 1},
}

var fixtureMenuItems = []domain.MenuItem{
	{MenuItemID: 1, MenuItemName: "Caesar Salad", MenuItemPrice: 12.99, MenuCategoryID: 1, MenuCategoryName: "DEMOABC"},
	{MenuItemID: 2, MenuItemName: "Rotli", MenuItemPrice: 1.00, MenuCategoryID: 1, MenuCategoryName: "DEMOABC"},
	{MenuItemID: 3, MenuItemName: "Bread", MenuItemPrice: 4.00, MenuCategoryID: 2, MenuCategoryName: "VIDESHI"},
	{MenuItemID: 4, MenuItemName: "Chinese Bhel", MenuItemPrice: 1.00, MenuCategoryID: 3, MenuCategoryName: "CHINESE"},
	{MenuItemID: 71, MenuItemName: "Momos", MenuItemPrice: 33.00, MenuCategoryID: 65, MenuCategoryName: "TEST BY TIRTH"},
}

var fixtureOrders = []domain.Order{
	{OrderID: 2, TableID: 2, TableNumber: 2, TotalAmount: 0.00, OrderStatus: "pending", RestaurantID: 1},
	{OrderID: 6, TableID: 1, TableNumber: 1, TotalAmount: 50.00, OrderStatus: "preparing", RestaurantID: 1},
	{OrderID: 7, TableID: 1, TableNumber: 1, TotalAmount: 12.00, OrderStatus: "served", RestaurantID: 1},
	{OrderID: 8, TableID: 1, TableNumber: 1, TotalAmount: 2251.00, OrderStatus: "pending", RestaurantID: 1},
	{OrderID: 9, TableID: 2, TableNumber: 2, TotalAmount: 15.00, OrderStatus: "paid", RestaurantID: 1},
	{OrderID: 10, TableID: 2, TableNumber: 2, TotalAmount: 5.00, OrderStatus: "served", RestaurantID: 1},
}

var fixtureOrderItems = []domain.OrderItem{
	{OrderItemID: 101, OrderID: 8, MenuItemID: 1, Quantity: 2, MenuItemPrice: 12.99, MenuItemName: "Caesar Salad"},
	{OrderItemID: 102, OrderID: 8, MenuItemID: 2, Quantity: 1, MenuItemPrice: 1.00, MenuItemName: "Rotli"},
	{OrderItemID: 103, OrderID: 8, MenuItemID: 3, Quantity: 1, MenuItemPrice: 4.00, MenuItemName: "Bread"},
	{OrderItemID: 201, OrderID: 6, MenuItemID: 71, Quantity: 1, MenuItemPrice: 33.00, SubTotal: 33.00, MenuItemName: "Momos"},
	{OrderItemID: 202, OrderID: 6, MenuItemID: 4, Quantity: 2, MenuItemPrice: 1.00, SubTotal: 2.00, MenuItemName: "Chinese Bhel"},
}

// FixtureFor resolves a request path to canned data. List endpoints match on
// their suffix; parameterized reads match on the containing segment and
// filter by the trailing id. Anything unrecognized gets an empty collection
// so screens degrade to "no records" rather than an error.
func FixtureFor(path string) json.RawMessage {
	switch {
	case strings.HasSuffix(path, "/tables"):
		return mustJSON(fixtureTables)
	case strings.HasSuffix(path, "/orders"):
		return mustJSON(fixtureOrders)
	case strings.HasSuffix(path, "/menu-items"):
		return mustJSON(fixtureMenuItems)
	case strings.HasSuffix(path, "/menu-categories"):
		return mustJSON(fixtureCategories)
	case strings.HasSuffix(path, "/users"):
		return mustJSON(fixtureUsers)
	case strings.HasSuffix(path, "/restaurants"):
		return mustJSON(fixtureRestaurants)
	}

	if strings.Contains(path, "/order-items/order/") {
		if id, ok := trailingID(path); ok {
			matched := []domain.OrderItem{}
			for _, item := range fixtureOrderItems {
				if item.OrderID == id {
					matched = append(matched, item)
				}
			}
			return mustJSON(matched)
		}
	}

	if strings.Contains(path, "/menu-items/category/") {
		if id, ok := trailingID(path); ok {
			matched := []domain.MenuItem{}
			for _, item := range fixtureMenuItems {
				if item.MenuCategoryID == id {
					matched = append(matched, item)
				}
			}
			return mustJSON(matched)
		}
	}

	// Orders filtered by table: return everything so the screen finds a match.
	if strings.Contains(path, "/orders/table/") {
		return mustJSON(fixtureOrders)
	}

	return json.RawMessage("[]")
}

func trailingID(path string) (int64, bool) {
	parts := strings.Split(strings.TrimRight(path, "/"), "/")
	if len(parts) == 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(parts[len(parts)-1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func mustJSON(v any) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("[]")
	}
	return raw
}
