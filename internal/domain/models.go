// Package domain holds the wire models exchanged with the backend REST API.
// Field names mirror the backend's JSON casing exactly; the API is an
// external collaborator and this gateway does not reshape its records.
package domain

type Restaurant struct {
	RestaurantID      int64  `json:"RestaurantID"`
	RestaurantName    string `json:"RestaurantName"`
	RestaurantAddress string `json:"RestaurantAddress,omitempty"`
	RestaurantPhone   string `json:"RestaurantPhone,omitempty"`
	Created           string `json:"Created,omitempty"`
	Modified          string `json:"Modified,omitempty"`
}

type Table struct {
	TableID       int64  `json:"TableID"`
	TableNumber   int64  `json:"TableNumber"`
	TableCapacity int64  `json:"TableCapacity"`
	TableStatus   string `json:"TableStatus"`
	RestaurantID  int64  `json:"RestaurantID"`
	Created       string `json:"Created,omitempty"`
	Modified      string `json:"Modified,omitempty"`
}

type MenuCategory struct {
	MenuCategoryID          int64  `json:"MenuCategoryID"`
	MenuCategoryName        string `json:"MenuCategoryName"`
	MenuCategoryDescription string `json:"MenuCategoryDescription,omitempty"`
	MenuCategoryImagePath   string `json:"MenuCategoryImagePath,omitempty"`
	RestaurantID            int64  `json:"RestaurantID"`
	Created                 string `json:"Created,omitempty"`
	Modified                string `json:"Modified,omitempty"`
}

type MenuItem struct {
	MenuItemID        int64   `json:"MenuItemID"`
	MenuItemName      string  `json:"MenuItemName"`
	MenuItemPrice     float64 `json:"MenuItemPrice"`
	MenuCategoryID    int64   `json:"MenuCategoryID"`
	MenuCategoryName  string  `json:"MenuCategoryName,omitempty"`
	MenuItemImagePath string  `json:"MenuItemImagePath,omitempty"`
	Created           string  `json:"Created,omitempty"`
	Modified          string  `json:"Modified,omitempty"`
}

type Order struct {
	OrderID      int64   `json:"OrderID"`
	TableID      int64   `json:"TableID"`
	TableNumber  int64   `json:"TableNumber,omitempty"`
	TotalAmount  float64 `json:"TotalAmount"`
	OrderStatus  string  `json:"OrderStatus"`
	RestaurantID int64   `json:"RestaurantID"`
	Created      string  `json:"Created,omitempty"`
	Modified     string  `json:"Modified,omitempty"`
}

type OrderItem struct {
	OrderItemID   int64   `json:"OrderItemID"`
	OrderID       int64   `json:"OrderID"`
	MenuItemID    int64   `json:"MenuItemID"`
	MenuItemName  string  `json:"MenuItemName,omitempty"`
	MenuItemPrice float64 `json:"MenuItemPrice,omitempty"`
	Quantity      int64   `json:"Quantity"`
	SubTotal      float64 `json:"SubTotal"`
	Created       string  `json:"Created,omitempty"`
	Modified      string  `json:"Modified,omitempty"`
}

type User struct {
	UserID       int64  `json:"UserID"`
	UserName     string `json:"UserName"`
	UserRole     string `json:"UserRole"`
	RestaurantID int64  `json:"RestaurantID"`
	Created      string `json:"Created,omitempty"`
	Modified     string `json:"Modified,omitempty"`
}
