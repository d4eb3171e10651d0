package provider

import (
	"github.com/fidelio-loyalty/internal/authz"
	"github.com/fidelio-loyalty/internal/cache"
	"github.com/fidelio-loyalty/internal/config"
	"github.com/fidelio-loyalty/internal/logger"
	"github.com/fidelio-loyalty/internal/models"
	"github.com/fidelio-loyalty/internal/queue"
	"github.com/fidelio-loyalty/internal/repository"
	"github.com/fidelio-loyalty/internal/service"
)

// Container is the dependency injection container.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo          repository.AdminRepository
	UserRepo           repository.UserRepository
	RestaurantRepo     repository.RestaurantRepository
	ProgramRepo        repository.LoyaltyProgramRepository
	MembershipRepo     repository.MembershipRepository
	VisitRepo          repository.VisitRepository
	CustomerRepo       repository.CustomerRepository
	CampaignRepo       repository.CampaignRepository
	FlashPromotionRepo repository.FlashPromotionRepository
	MenuItemRepo       repository.MenuItemRepository

	// Services
	AuthzService          *authz.Service
	AuthService           *service.AuthService
	UserAuthService       *service.UserAuthService
	CaptchaService        *service.CaptchaService
	RestaurantService     *service.RestaurantService
	ProgramService        *service.LoyaltyProgramService
	MenuService           *service.MenuService
	VisitService          *service.VisitService
	CustomerStatsService  *service.CustomerStatsService
	CampaignService       *service.CampaignService
	FlashPromotionService *service.FlashPromotionService
}

// NewContainer initializes the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.RestaurantRepo = repository.NewRestaurantRepository(db)
	c.ProgramRepo = repository.NewLoyaltyProgramRepository(db)
	c.MembershipRepo = repository.NewMembershipRepository(db)
	c.VisitRepo = repository.NewVisitRepository(db)
	c.CustomerRepo = repository.NewCustomerRepository(db)
	c.CampaignRepo = repository.NewCampaignRepository(db)
	c.FlashPromotionRepo = repository.NewFlashPromotionRepository(db)
	c.MenuItemRepo = repository.NewMenuItemRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)

	c.RestaurantService = service.NewRestaurantService(c.RestaurantRepo, c.VisitRepo, c.Config.Server.PublicBaseURL)
	c.ProgramService = service.NewLoyaltyProgramService(c.ProgramRepo, c.RestaurantRepo)
	c.MenuService = service.NewMenuService(c.MenuItemRepo, c.RestaurantRepo)
	c.CustomerStatsService = service.NewCustomerStatsService(c.CustomerRepo, c.VisitRepo, c.Config.Loyalty.InactiveAfterDays)
	c.VisitService = service.NewVisitService(
		c.VisitRepo,
		c.MembershipRepo,
		c.RestaurantRepo,
		c.ProgramRepo,
		c.CustomerStatsService,
		service.NewAllowlistCodeVerifier(c.Config.Loyalty.VisitCodes),
	)
	c.CampaignService = service.NewCampaignService(c.CampaignRepo, c.CustomerRepo, c.CustomerStatsService, c.QueueClient)
	c.FlashPromotionService = service.NewFlashPromotionService(c.FlashPromotionRepo, c.MenuItemRepo)
}
