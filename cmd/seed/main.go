package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/mammamia/pizzeria-backend/internal/catalog"
	"github.com/mammamia/pizzeria-backend/internal/customers"
	"github.com/mammamia/pizzeria-backend/internal/delivery"
	"github.com/mammamia/pizzeria-backend/internal/discounts"
	"github.com/mammamia/pizzeria-backend/internal/pricing"
	"github.com/mammamia/pizzeria-backend/pkg/config"
	"github.com/mammamia/pizzeria-backend/pkg/db"
	"github.com/mammamia/pizzeria-backend/pkg/enums"
	"github.com/mammamia/pizzeria-backend/pkg/logger"
	"github.com/mammamia/pizzeria-backend/pkg/migrate"
)

// Tables cleared by -purge, ordered so foreign keys never block.
var purgeTables = []string{
	"order_discount_applications",
	"order_adjustments",
	"order_items",
	"customer_orders",
	"customer_discount_redemptions",
	"customer_loyalty",
	"discount_codes",
	"delivery_zone_assignments",
	"delivery_people",
	"customers",
	"dessert_ingredients",
	"desserts",
	"drinks",
	"pizza_ingredients",
	"pizzas",
	"ingredients",
	"postal_areas",
}

func main() {
	purge := flag.Bool("purge", false, "delete existing rows before seeding")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "seed"})
	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}
	if cfg.App.IsProd() {
		logg.Error(ctx, "refusing to seed a prod database", nil)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	if *purge {
		for _, table := range purgeTables {
			if err := gormDB.WithContext(ctx).Exec("DELETE FROM " + table).Error; err != nil {
				logg.Error(ctx, "failed to purge table "+table, err)
				os.Exit(1)
			}
		}
		logg.Info(ctx, "purged existing rows")
	}

	catalogRepo := catalog.NewRepository(gormDB)
	pricingRepo := pricing.NewRepository(gormDB)

	catalogService, err := catalog.NewService(catalogRepo, pricingRepo, dbClient)
	exitOn(ctx, logg, "catalog service", err)

	customersService, err := customers.NewService(customers.NewRepository(gormDB), dbClient)
	exitOn(ctx, logg, "customers service", err)

	discountsService, err := discounts.NewService(discounts.NewRepository(gormDB))
	exitOn(ctx, logg, "discounts service", err)

	deliveryService, err := delivery.NewService(delivery.NewRepository(gormDB), cfg.Orders)
	exitOn(ctx, logg, "delivery service", err)

	if err := seed(ctx, catalogService, customersService, discountsService, deliveryService); err != nil {
		logg.Error(ctx, "seeding failed", err)
		os.Exit(1)
	}
	logg.Info(ctx, "sample data loaded")
}

func exitOn(ctx context.Context, logg *logger.Logger, what string, err error) {
	if err != nil {
		logg.Error(ctx, "failed to create "+what, err)
		os.Exit(1)
	}
}

func seed(
	ctx context.Context,
	catalogSvc catalog.Service,
	customersSvc customers.Service,
	discountsSvc discounts.Service,
	deliverySvc delivery.Service,
) error {
	centro, err := customersSvc.CreatePostalArea(ctx, customers.PostalAreaInput{
		PostalCode: "00184", City: "Roma", Country: "IT",
	})
	if err != nil {
		return fmt.Errorf("postal area 00184: %w", err)
	}
	trastevere, err := customersSvc.CreatePostalArea(ctx, customers.PostalAreaInput{
		PostalCode: "00153", City: "Roma", Country: "IT",
	})
	if err != nil {
		return fmt.Errorf("postal area 00153: %w", err)
	}

	ingredients, err := seedIngredients(ctx, catalogSvc)
	if err != nil {
		return err
	}

	if err := seedPizzas(ctx, catalogSvc, ingredients); err != nil {
		return err
	}

	drinks := []catalog.CreateDrinkInput{
		{Name: "Acqua Naturale 50cl", Category: "water", PriceEUR: decimal.RequireFromString("1.50")},
		{Name: "Coca-Cola 33cl", Category: "soda", PriceEUR: decimal.RequireFromString("2.50")},
		{Name: "Birra Moretti 33cl", Category: "beer", PriceEUR: decimal.RequireFromString("3.50")},
	}
	for _, input := range drinks {
		if _, err := catalogSvc.CreateDrink(ctx, input); err != nil {
			return fmt.Errorf("drink %s: %w", input.Name, err)
		}
	}

	desserts := []catalog.CreateDessertInput{
		{
			Name:        "Tiramisù",
			Description: "Classic mascarpone and espresso",
			PriceEUR:    decimal.RequireFromString("4.50"),
			Ingredients: []string{"mascarpone", "espresso", "savoiardi", "cocoa"},
		},
		{
			Name:        "Sorbetto al Limone",
			Description: "Lemon sorbet",
			PriceEUR:    decimal.RequireFromString("3.50"),
			IsVegan:     true,
			Ingredients: []string{"lemon", "sugar", "water"},
		},
	}
	for _, input := range desserts {
		if _, err := catalogSvc.CreateDessert(ctx, input); err != nil {
			return fmt.Errorf("dessert %s: %w", input.Name, err)
		}
	}

	couriers := []delivery.CreateCourierInput{
		{
			FirstName: "Marco", LastName: "Bianchi", Phone: "+39 333 111 2222",
			PostalAreaID: centro.ID,
			Zones: []delivery.ZoneInput{
				{PostalAreaID: centro.ID, Priority: 1},
				{PostalAreaID: trastevere.ID, Priority: 2},
			},
		},
		{
			FirstName: "Giulia", LastName: "Russo", Phone: "+39 333 333 4444",
			PostalAreaID: trastevere.ID,
			Zones: []delivery.ZoneInput{
				{PostalAreaID: trastevere.ID, Priority: 1},
			},
		},
	}
	for _, input := range couriers {
		if _, err := deliverySvc.CreateCourier(ctx, input); err != nil {
			return fmt.Errorf("courier %s %s: %w", input.FirstName, input.LastName, err)
		}
	}

	welcomePercent := decimal.RequireFromString("10")
	freeDrink := decimal.RequireFromString("2.50")
	freeDrinkUntil := time.Now().UTC().AddDate(1, 0, 0)
	codes := []discounts.CreateCodeInput{
		{
			Code:         "WELCOME10",
			Description:  "10% off for new customers, once per customer",
			DiscountType: enums.DiscountTypePercentage,
			Percent:      &welcomePercent,
			ValidFrom:    time.Now().UTC(),
			IsOneTime:    true,
		},
		{
			Code:         "FREEDRINK",
			Description:  "One soft drink on the house",
			DiscountType: enums.DiscountTypeFixedAmount,
			AmountEUR:    &freeDrink,
			ValidFrom:    time.Now().UTC(),
			ValidUntil:   &freeDrinkUntil,
		},
	}
	for _, input := range codes {
		if _, err := discountsSvc.CreateCode(ctx, input); err != nil {
			return fmt.Errorf("discount code %s: %w", input.Code, err)
		}
	}

	if _, err := customersSvc.Register(ctx, customers.RegisterInput{
		FirstName:  "Anna",
		LastName:   "Verdi",
		Birthdate:  time.Date(1992, time.March, 14, 0, 0, 0, 0, time.UTC),
		Email:      "anna.verdi@example.com",
		Phone:      "+39 333 555 6666",
		Street:     "Via Cavour 12",
		PostalCode: centro.PostalCode,
		Gender:     "female",
	}); err != nil {
		return fmt.Errorf("sample customer: %w", err)
	}

	return nil
}

func seedIngredients(ctx context.Context, svc catalog.Service) (map[string]uuid.UUID, error) {
	inputs := []catalog.CreateIngredientInput{
		{Name: "tomato sauce", IsVegan: true, UnitCost: decimal.RequireFromString("0.30"), UnitType: "grams"},
		{Name: "mozzarella", IsDairy: true, UnitCost: decimal.RequireFromString("1.20"), UnitType: "grams"},
		{Name: "dough", IsVegan: true, UnitCost: decimal.RequireFromString("0.80"), UnitType: "pieces"},
		{Name: "basil", IsVegan: true, UnitCost: decimal.RequireFromString("0.20"), UnitType: "grams"},
		{Name: "prosciutto", IsMeat: true, UnitCost: decimal.RequireFromString("2.40"), UnitType: "grams"},
		{Name: "mushrooms", IsVegan: true, UnitCost: decimal.RequireFromString("0.90"), UnitType: "grams"},
		{Name: "spicy salami", IsMeat: true, UnitCost: decimal.RequireFromString("2.10"), UnitType: "grams"},
		{Name: "vegan cheese", IsVegan: true, UnitCost: decimal.RequireFromString("1.60"), UnitType: "grams"},
	}

	ids := make(map[string]uuid.UUID, len(inputs))
	for _, input := range inputs {
		created, err := svc.CreateIngredient(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("ingredient %s: %w", input.Name, err)
		}
		ids[input.Name] = created.ID
	}
	return ids, nil
}

func seedPizzas(ctx context.Context, svc catalog.Service, ingredients map[string]uuid.UUID) error {
	one := decimal.NewFromInt(1)
	two := decimal.NewFromInt(2)

	pizzas := []struct {
		input  catalog.CreatePizzaInput
		recipe []catalog.RecipeLineInput
	}{
		{
			input: catalog.CreatePizzaInput{Name: "Margherita", Description: "Tomato, mozzarella, basil"},
			recipe: []catalog.RecipeLineInput{
				{IngredientID: ingredients["dough"], Quantity: one},
				{IngredientID: ingredients["tomato sauce"], Quantity: two},
				{IngredientID: ingredients["mozzarella"], Quantity: two},
				{IngredientID: ingredients["basil"], Quantity: one},
			},
		},
		{
			input: catalog.CreatePizzaInput{Name: "Prosciutto e Funghi", Description: "Ham and mushrooms"},
			recipe: []catalog.RecipeLineInput{
				{IngredientID: ingredients["dough"], Quantity: one},
				{IngredientID: ingredients["tomato sauce"], Quantity: two},
				{IngredientID: ingredients["mozzarella"], Quantity: two},
				{IngredientID: ingredients["prosciutto"], Quantity: one},
				{IngredientID: ingredients["mushrooms"], Quantity: one},
			},
		},
		{
			input: catalog.CreatePizzaInput{Name: "Diavola", Description: "Spicy salami"},
			recipe: []catalog.RecipeLineInput{
				{IngredientID: ingredients["dough"], Quantity: one},
				{IngredientID: ingredients["tomato sauce"], Quantity: two},
				{IngredientID: ingredients["mozzarella"], Quantity: two},
				{IngredientID: ingredients["spicy salami"], Quantity: two},
			},
		},
		{
			input: catalog.CreatePizzaInput{Name: "Vegana", Description: "Tomato, vegan cheese, vegetables"},
			recipe: []catalog.RecipeLineInput{
				{IngredientID: ingredients["dough"], Quantity: one},
				{IngredientID: ingredients["tomato sauce"], Quantity: two},
				{IngredientID: ingredients["vegan cheese"], Quantity: two},
				{IngredientID: ingredients["mushrooms"], Quantity: one},
			},
		},
	}

	for _, p := range pizzas {
		created, err := svc.CreatePizza(ctx, p.input)
		if err != nil {
			return fmt.Errorf("pizza %s: %w", p.input.Name, err)
		}
		if _, err := svc.SetRecipe(ctx, created.ID, p.recipe); err != nil {
			return fmt.Errorf("recipe for %s: %w", p.input.Name, err)
		}
	}
	return nil
}
