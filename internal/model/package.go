package model

// UnlimitedApplications marks a package without an application cap.
const UnlimitedApplications = -1

type Package struct {
	ID                int64   `json:"id,omitempty"`
	Key               string  `json:"-"`
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	ApplicationsLimit int     `json:"applications_limit"`
	Description       string  `json:"description"`
}

// AmountCents returns the package price as an integer amount in cents,
// the unit payment gateways expect.
func (p Package) AmountCents() int64 {
	return int64(p.Price*100 + 0.5)
}

// Unlimited reports whether the package has no application cap.
func (p Package) Unlimited() bool {
	return p.ApplicationsLimit == UnlimitedApplications
}

// Catalog is the fixed package catalog, defined at process start and not
// user-editable. IDs are stable so subscriptions can reference rows seeded
// from here. Order matters for keyboard rendering.
func Catalog() []Package {
	return []Package{
		{
			ID:                1,
			Key:               "basic",
			Name:              "Basic",
			Price:             49.99,
			ApplicationsLimit: 100,
			Description:       "100 applications/month",
		},
		{
			ID:                2,
			Key:               "pro",
			Name:              "Pro",
			Price:             149.99,
			ApplicationsLimit: 500,
			Description:       "500 applications/month",
		},
		{
			ID:                3,
			Key:               "enterprise",
			Name:              "Enterprise",
			Price:             299.99,
			ApplicationsLimit: UnlimitedApplications,
			Description:       "Unlimited applications",
		},
	}
}

// PackageByKey looks up a catalog entry by its callback key.
func PackageByKey(key string) (Package, bool) {
	for _, p := range Catalog() {
		if p.Key == key {
			return p, true
		}
	}
	return Package{}, false
}
