package main

import (
	"fmt"
	"time"

	"github.com/fidelio-loyalty/internal/config"
	"github.com/fidelio-loyalty/internal/constants"
	"github.com/fidelio-loyalty/internal/logger"
	"github.com/fidelio-loyalty/internal/models"
	"github.com/fidelio-loyalty/internal/repository"
	"github.com/fidelio-loyalty/internal/service"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	restaurants := []models.Restaurant{
		{
			Name:        "Chez Margot",
			Status:      constants.RestaurantStatusActive,
			Cuisine:     "française",
			Address:     "12 rue des Martyrs, 75009 Paris",
			Phone:       "+33 1 42 00 00 01",
			Description: "Bistrot de quartier, carte courte et produits de saison.",
			Offer:       "Un dessert offert dès 10 visites",
			BudgetTier:  "€€",
		},
		{
			Name:        "Trattoria Lucia",
			Status:      constants.RestaurantStatusActive,
			Cuisine:     "italienne",
			Address:     "4 place Sathonay, 69001 Lyon",
			Phone:       "+33 4 78 00 00 02",
			Description: "Pâtes fraîches maison et pizzas au feu de bois.",
			Offer:       "1 point par euro dépensé",
			BudgetTier:  "€€",
		},
		{
			Name:        "Le Comptoir Vert",
			Status:      constants.RestaurantStatusInactive,
			Cuisine:     "végétarienne",
			Address:     "28 cours Julien, 13006 Marseille",
			Phone:       "+33 4 91 00 00 03",
			Description: "Cuisine végétale, fermé pour travaux.",
			BudgetTier:  "€",
		},
	}

	for _, rest := range restaurants {
		var existing models.Restaurant
		if err := models.DB.Where("name = ?", rest.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&rest).Error; err != nil {
				stdLog.Printf("Failed to create restaurant %s: %v", rest.Name, err)
			} else {
				stdLog.Printf("Created restaurant: %s", rest.Name)
			}
		} else {
			stdLog.Printf("Restaurant already exists: %s", rest.Name)
		}
	}

	restaurantIDs := map[string]uint{}
	var restaurantList []models.Restaurant
	if err := models.DB.Find(&restaurantList).Error; err != nil {
		stdLog.Printf("Failed to load restaurants: %v", err)
	}
	for _, rest := range restaurantList {
		restaurantIDs[rest.Name] = rest.ID
	}
	margotID := restaurantIDs["Chez Margot"]
	luciaID := restaurantIDs["Trattoria Lucia"]

	programs := []models.LoyaltyProgram{
		{
			RestaurantID: margotID,
			Type:         constants.ProgramTypeStamps,
			TargetCount:  10,
			RewardLabel:  "Un dessert offert",
			WelcomeBonus: 0,
		},
		{
			RestaurantID:  luciaID,
			Type:          constants.ProgramTypePoints,
			SpendingRatio: 1,
			WelcomeBonus:  20,
			RewardLabel:   "10 € de réduction à 200 points",
		},
	}

	for _, prog := range programs {
		if prog.RestaurantID == 0 {
			stdLog.Printf("Skip program: restaurant missing")
			continue
		}
		var existing models.LoyaltyProgram
		if err := models.DB.Where("restaurant_id = ?", prog.RestaurantID).First(&existing).Error; err != nil {
			if err := models.DB.Create(&prog).Error; err != nil {
				stdLog.Printf("Failed to create program for restaurant %d: %v", prog.RestaurantID, err)
			} else {
				stdLog.Printf("Created %s program for restaurant %d", prog.Type, prog.RestaurantID)
			}
		} else {
			stdLog.Printf("Program already exists for restaurant %d", prog.RestaurantID)
		}
	}

	menuItems := []models.MenuItem{
		{
			RestaurantID: margotID,
			Name:         "Œuf mayo",
			Category:     "entrée",
			Price:        models.NewMoneyFromDecimal(decimal.NewFromFloat(6.50)),
			Available:    true,
			SortOrder:    10,
		},
		{
			RestaurantID: margotID,
			Name:         "Bavette échalote",
			Description:  "Frites maison, sauce au poivre.",
			Category:     "plat",
			Price:        models.NewMoneyFromDecimal(decimal.NewFromFloat(18.00)),
			Available:    true,
			SortOrder:    20,
		},
		{
			RestaurantID: margotID,
			Name:         "Crème brûlée",
			Category:     "dessert",
			Price:        models.NewMoneyFromDecimal(decimal.NewFromFloat(7.00)),
			Available:    true,
			SortOrder:    30,
		},
		{
			RestaurantID: luciaID,
			Name:         "Tagliatelle al ragù",
			Category:     "plat",
			Price:        models.NewMoneyFromDecimal(decimal.NewFromFloat(15.50)),
			Available:    true,
			SortOrder:    10,
		},
		{
			RestaurantID: luciaID,
			Name:         "Pizza margherita",
			Category:     "plat",
			Price:        models.NewMoneyFromDecimal(decimal.NewFromFloat(12.00)),
			Available:    true,
			SortOrder:    20,
		},
		{
			RestaurantID: luciaID,
			Name:         "Tiramisù",
			Category:     "dessert",
			Price:        models.NewMoneyFromDecimal(decimal.NewFromFloat(6.50)),
			Available:    false,
			SortOrder:    30,
		},
	}

	for _, item := range menuItems {
		if item.RestaurantID == 0 {
			stdLog.Printf("Skip menu item %s: restaurant missing", item.Name)
			continue
		}
		var existing models.MenuItem
		if err := models.DB.Where("restaurant_id = ? AND name = ?", item.RestaurantID, item.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&item).Error; err != nil {
				stdLog.Printf("Failed to create menu item %s: %v", item.Name, err)
			} else {
				stdLog.Printf("Created menu item: %s", item.Name)
			}
		} else {
			stdLog.Printf("Menu item already exists: %s", item.Name)
		}
	}

	now := time.Now()
	promotions := []models.FlashPromotion{
		{
			RestaurantID: luciaID,
			Title:        "Pizza margherita à -50%",
			Description:  "Offre limitée aux 20 premières réclamations.",
			Quantity:     20,
			Remaining:    20,
			StartsAt:     now.Add(-time.Hour),
			EndsAt:       now.AddDate(0, 0, 3),
		},
		{
			RestaurantID: margotID,
			Title:        "Café offert au déjeuner",
			Quantity:     50,
			Remaining:    50,
			StartsAt:     now.AddDate(0, 0, 7),
			EndsAt:       now.AddDate(0, 0, 14),
		},
	}

	for _, promo := range promotions {
		if promo.RestaurantID == 0 {
			stdLog.Printf("Skip promotion %s: restaurant missing", promo.Title)
			continue
		}
		var existing models.FlashPromotion
		if err := models.DB.Where("restaurant_id = ? AND title = ?", promo.RestaurantID, promo.Title).First(&existing).Error; err != nil {
			if err := models.DB.Create(&promo).Error; err != nil {
				stdLog.Printf("Failed to create promotion %s: %v", promo.Title, err)
			} else {
				stdLog.Printf("Created promotion: %s", promo.Title)
			}
		} else {
			stdLog.Printf("Promotion already exists: %s", promo.Title)
		}
	}

	users := []struct {
		Email       string
		DisplayName string
	}{
		{Email: "claire@example.com", DisplayName: "Claire"},
		{Email: "karim@example.com", DisplayName: "Karim"},
	}
	userIDs := map[string]uint{}
	for _, demo := range users {
		var existing models.User
		if err := models.DB.Where("email = ?", demo.Email).First(&existing).Error; err == nil {
			userIDs[demo.Email] = existing.ID
			stdLog.Printf("User already exists: %s", demo.Email)
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte("Fidelio-demo-1"), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Printf("Failed to hash password for %s: %v", demo.Email, err)
			continue
		}
		user := models.User{
			Email:        demo.Email,
			PasswordHash: string(hash),
			DisplayName:  demo.DisplayName,
			Locale:       "fr",
			Status:       constants.UserStatusActive,
		}
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Printf("Failed to create user %s: %v", demo.Email, err)
			continue
		}
		userIDs[demo.Email] = user.ID
		stdLog.Printf("Created user: %s", demo.Email)
	}

	// Demo visits run through the real pipeline so memberships, tiers and
	// customer stats stay consistent with what the API would produce.
	customerRepo := repository.NewCustomerRepository(models.DB)
	visitRepo := repository.NewVisitRepository(models.DB)
	statsSvc := service.NewCustomerStatsService(customerRepo, visitRepo, cfg.Loyalty.InactiveAfterDays)
	visitSvc := service.NewVisitService(
		visitRepo,
		repository.NewMembershipRepository(models.DB),
		repository.NewRestaurantRepository(models.DB),
		repository.NewLoyaltyProgramRepository(models.DB),
		statsSvc,
		service.NewAllowlistCodeVerifier(cfg.Loyalty.VisitCodes),
	)

	visits := []struct {
		Email        string
		RestaurantID uint
		Amount       float64
		DaysAgo      int
		Key          string
	}{
		{Email: "claire@example.com", RestaurantID: margotID, Amount: 31.50, DaysAgo: 12, Key: "seed-claire-margot-1"},
		{Email: "claire@example.com", RestaurantID: margotID, Amount: 24.00, DaysAgo: 4, Key: "seed-claire-margot-2"},
		{Email: "karim@example.com", RestaurantID: luciaID, Amount: 27.50, DaysAgo: 9, Key: "seed-karim-lucia-1"},
		{Email: "karim@example.com", RestaurantID: luciaID, Amount: 33.00, DaysAgo: 2, Key: "seed-karim-lucia-2"},
	}
	for _, demo := range visits {
		userID := userIDs[demo.Email]
		if userID == 0 || demo.RestaurantID == 0 {
			stdLog.Printf("Skip visit %s: user or restaurant missing", demo.Key)
			continue
		}
		amount := models.NewMoneyFromDecimal(decimal.NewFromFloat(demo.Amount))
		visitedAt := now.AddDate(0, 0, -demo.DaysAgo)
		result, err := visitSvc.Validate(service.ValidateVisitInput{
			UserID:         userID,
			RestaurantID:   demo.RestaurantID,
			Code:           "1234",
			Amount:         &amount,
			IdempotencyKey: demo.Key,
			VisitedAt:      &visitedAt,
		})
		if err != nil {
			stdLog.Printf("Failed to record visit %s: %v", demo.Key, err)
			continue
		}
		if result.Replayed {
			stdLog.Printf("Visit already recorded: %s", demo.Key)
		} else {
			stdLog.Printf("Recorded visit: %s (+%dpts +%dst)", demo.Key, result.Visit.PointsEarned, result.Visit.StampsEarned)
		}
	}

	fmt.Println("\nDemo data created.")
	fmt.Println("Summary:")
	fmt.Println("- 3 restaurants (2 active, 1 inactive)")
	fmt.Println("- 2 loyalty programs (stamps + points)")
	fmt.Println("- 6 menu items")
	fmt.Println("- 2 flash promotions (1 running, 1 upcoming)")
	fmt.Println("- 2 demo diners with 4 validated visits")
}
