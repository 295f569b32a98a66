package domain

// MenuItem is one of the goods sold at the merchant stand. Price is in
// satoshis; persisted overrides take precedence over the built-in default.
type MenuItem struct {
	Id          string
	Name        string
	Price       uint64
	Description string
}

// DefaultMenu is the built-in merchant menu.
var DefaultMenu = []MenuItem{
	{
		Id:          "mango-salad",
		Name:        "Mango Salad",
		Price:       20_000,
		Description: "A refreshing and exotic treat",
	},
	{
		Id:          "banana-bread",
		Name:        "Banana Bread",
		Price:       12_000,
		Description: "A hearty and comforting loaf",
	},
	{
		Id:          "corn-tortillas",
		Name:        "Corn Tortillas",
		Price:       8_000,
		Description: "A simple and savory snack",
	},
	{
		Id:          "apple-pie",
		Name:        "Apple Pie",
		Price:       15_000,
		Description: "A classic, sweet indulgence",
	},
	{
		Id:          "hummus",
		Name:        "Hummus",
		Price:       4_000,
		Description: "A healthy and flavorful dip",
	},
}
