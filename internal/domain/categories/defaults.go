package categories

type DefaultCategory struct {
	Name  string
	Icon  string
	Color string
}

// Defaults is the set seeded for every new user.
var Defaults = []DefaultCategory{
	{Name: "Food", Icon: "restaurant-outline", Color: "#ff6b6b"},
	{Name: "Rent", Icon: "home-outline", Color: "#4ecdc4"},
	{Name: "Transport", Icon: "car-outline", Color: "#45b7d1"},
	{Name: "Bills", Icon: "receipt-outline", Color: "#96ceb4"},
	{Name: "Shopping", Icon: "cart-outline", Color: "#ffeaa7"},
	{Name: "Entertainment", Icon: "game-controller-outline", Color: "#dda0dd"},
	{Name: "Health", Icon: "medical-outline", Color: "#98d8c8"},
	{Name: "Other", Icon: "ellipsis-horizontal-outline", Color: "#b0bec5"},
}
