package usecase

import "github.com/greentail/backend/internal/domain"

// testCatalog is a small catalog covering every filterable attribute
func testCatalog() []domain.Product {
	return []domain.Product{
		{
			ID:           1,
			Brand:        "Open Farm",
			Name:         "Grass-Fed Beef Recipe",
			PetType:      []string{"Dog"},
			LifeStage:    []string{"Adult"},
			WeightRange:  []string{"Medium", "Large"},
			MainProteins: []string{"Beef"},
			IsOrganic:    true,
			IsGrainFree:  true,
			EcoFeatures: domain.EcoFeatures{
				Certified:           true,
				RecyclablePackaging: true,
			},
			FeedingStyle:     []string{"Dry"},
			BudgetRange:      []string{domain.Budget40to60},
			Price:            54.99,
			PricePer1000kcal: 3.4,
			Tags:             []string{"Certified Organic", "Premium", "Recyclable bag"},
		},
		{
			ID:           2,
			Brand:        "Yora",
			Name:         "Insect Protein Adult",
			PetType:      []string{"Dog"},
			LifeStage:    []string{"Adult"},
			WeightRange:  []string{"Small", "Medium"},
			MainProteins: []string{"Insect"},
			IsGrainFree:  false,
			EcoFeatures: domain.EcoFeatures{
				LowFootprintProtein: true,
				RecyclablePackaging: true,
			},
			FeedingStyle:     []string{"Dry"},
			BudgetRange:      []string{domain.Budget25to40},
			Price:            36.5,
			PricePer1000kcal: 2.9,
			Tags:             []string{"Sustainable", "Hypoallergenic", "Subscription"},
		},
		{
			ID:               3,
			Brand:            "Castor & Pollux",
			Name:             "Organix Chicken & Oatmeal",
			PetType:          []string{"Dog"},
			LifeStage:        []string{"Adult", "Senior"},
			WeightRange:      []string{"Small", "Medium", "Large"},
			MainProteins:     []string{"Chicken"},
			AvoidIngredients: []string{"Chicken"},
			IsOrganic:        true,
			EcoFeatures:      domain.EcoFeatures{Certified: true},
			FeedingStyle:     []string{"Dry"},
			BudgetRange:      []string{domain.BudgetUnder25},
			Price:            24.99,
			PricePer1000kcal: 2.1,
			Tags:             []string{"Certified Organic", "Budget"},
			PresetLevel:      domain.MatchLevelBudget,
		},
		{
			ID:               4,
			Brand:            "Smalls",
			Name:             "Fresh Ground Bird",
			PetType:          []string{"Cat"},
			LifeStage:        []string{"Kitten", "Adult"},
			WeightRange:      []string{"Small"},
			MainProteins:     []string{"Chicken", "Turkey"},
			IsGrainFree:      true,
			EcoFeatures:      domain.EcoFeatures{LocalProduction: true},
			FeedingStyle:     []string{"Fresh"},
			BudgetRange:      []string{domain.Budget40to60, domain.BudgetOver60},
			Price:            45,
			PricePer1000kcal: 5.0,
			Tags:             []string{"Human-Grade", "Subscription", "High Protein"},
		},
		{
			ID:               5,
			Brand:            "Tiki Cat",
			Name:             "Wild Salmon Pate",
			PetType:          []string{"Cat"},
			LifeStage:        []string{"Adult"},
			WeightRange:      []string{"Small", "Medium"},
			MainProteins:     []string{"Fish"},
			IsGrainFree:      true,
			FeedingStyle:     []string{"Wet"},
			BudgetRange:      []string{domain.Budget25to40},
			Price:            32,
			PricePer1000kcal: 3.2,
			Tags:             []string{"MSC sustainable seafood", "Limited Ingredient"},
		},
	}
}

// productByID finds a fixture product or panics
func productByID(id int) domain.Product {
	for _, p := range testCatalog() {
		if p.ID == id {
			return p
		}
	}
	panic("unknown fixture product")
}
