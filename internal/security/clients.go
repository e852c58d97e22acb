package security

// Client is an API credential with its granted permissions. Static for
// now; swap for a store when client management becomes a feature.
type Client struct {
	Secret  string
	Perms   []string
	Enabled bool
}

var Clients = map[string]Client{
	"storefront": {
		Secret:  "storefront-secret",
		Enabled: true,
		Perms: []string{
			"products.read", "orders.read", "orders.write", "customers.write",
		},
	},
	"back-office": {
		Secret:  "back-office-secret",
		Enabled: true,
		Perms: []string{
			"products.read", "products.write",
			"inventory.read", "inventory.write",
			"orders.read", "orders.write",
			"customers.read", "customers.write",
		},
	},
}
