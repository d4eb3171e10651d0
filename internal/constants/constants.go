package constants

// Restaurant status values.
const (
	RestaurantStatusActive   = "ACTIVE"
	RestaurantStatusInactive = "INACTIVE"
)

// Loyalty program types.
const (
	ProgramTypePoints   = "points"
	ProgramTypeStamps   = "stamps"
	ProgramTypeSpending = "spending"
	ProgramTypeMissions = "missions"
)

// Visit validation methods.
const (
	ValidationMethodCode = "code"
	ValidationMethodNFC  = "nfc"
)

// Membership tier labels, ordered from lowest to highest.
const (
	TierBronze  = "Bronze"
	TierArgent  = "Argent"
	TierOr      = "Or"
	TierPlatine = "Platine"
)

// Customer segment labels (product-facing French labels).
const (
	SegmentNouveau     = "Nouveau"
	SegmentOccasionnel = "Occasionnel"
	SegmentHabitue     = "Habitué"
	SegmentFidele      = "Fidèle"
	SegmentPremium     = "Premium"
	SegmentInactif     = "Inactif"
)

// Campaign status values.
const (
	CampaignStatusDraft       = "draft"
	CampaignStatusDispatching = "dispatching"
	CampaignStatusSent        = "sent"
)

// User account status values.
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// Async task type names.
const (
	TaskCampaignDispatch     = "campaign:dispatch"
	TaskCustomerStatsRefresh = "customer:stats_refresh"
)

// Queue names.
const (
	QueueDefault = "default"
)

// Captcha provider values.
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// Captcha scene names.
const (
	CaptchaSceneLogin      = "login"
	CaptchaSceneAdminLogin = "admin_login"
)
