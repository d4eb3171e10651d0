package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// Supported locales. French is the product's default audience.
const (
	LocaleFR = "fr"
	LocaleEN = "en"
)

const defaultLocale = LocaleFR

// ContextKey holds the resolved locale inside the gin context.
const ContextKey = "locale"

// ResolveLocale picks the response locale for a request. Priority:
// explicit ?lang= query, then Accept-Language, then the default.
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return defaultLocale
	}
	if cached, ok := c.Get(ContextKey); ok {
		if locale, ok := cached.(string); ok && locale != "" {
			return locale
		}
	}

	locale := normalizeLocale(c.Query("lang"))
	if locale == "" {
		locale = matchAcceptLanguage(c.GetHeader("Accept-Language"))
	}
	if locale == "" {
		locale = defaultLocale
	}

	c.Set(ContextKey, locale)
	return locale
}

// T returns the message for key in the given locale, falling back to the
// default locale and finally to the key itself.
func T(locale, key string) string {
	locale = normalizeLocale(locale)
	if locale == "" {
		locale = defaultLocale
	}
	if catalog, ok := catalogs[locale]; ok {
		if message, ok := catalog[key]; ok {
			return message
		}
	}
	if message, ok := catalogs[defaultLocale][key]; ok {
		return message
	}
	return key
}

// Sprintf formats the localized message for key with args.
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

func normalizeLocale(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	switch {
	case raw == "":
		return ""
	case strings.HasPrefix(raw, LocaleFR):
		return LocaleFR
	case strings.HasPrefix(raw, LocaleEN):
		return LocaleEN
	default:
		return ""
	}
}

func matchAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := part
		if idx := strings.IndexByte(tag, ';'); idx >= 0 {
			tag = tag[:idx]
		}
		if locale := normalizeLocale(tag); locale != "" {
			return locale
		}
	}
	return ""
}

var catalogs = map[string]map[string]string{
	LocaleFR: {
		"error.bad_request":          "Requête invalide",
		"error.invalid_params":       "Paramètres invalides",
		"error.unauthorized":         "Authentification requise",
		"error.invalid_credentials":  "Identifiants incorrects",
		"error.forbidden":            "Accès refusé",
		"error.not_found":            "Ressource introuvable",
		"error.conflict":             "Conflit avec l'état actuel",
		"error.too_many_requests":    "Trop de requêtes, réessayez plus tard",
		"error.internal":             "Erreur interne du serveur",
		"error.restaurant_not_found": "Restaurant introuvable",
		"error.restaurant_inactive":  "Ce restaurant est désactivé",
		"error.restaurant_has_visits": "Le restaurant a des visites enregistrées, désactivez-le plutôt",
		"error.program_not_found":    "Programme de fidélité introuvable",
		"error.program_exists":       "Ce restaurant a déjà un programme de fidélité",
		"error.invalid_program_type": "Type de programme invalide",
		"error.invalid_code":         "Code de validation incorrect",
		"error.invalid_amount":       "Le montant doit être positif ou nul",
		"error.membership_not_found": "Adhésion introuvable",
		"error.customer_not_found":   "Client introuvable",
		"error.campaign_not_found":   "Campagne introuvable",
		"error.campaign_not_draft":   "La campagne a déjà été envoyée",
		"error.promotion_not_found":  "Promotion introuvable",
		"error.promotion_inactive":   "La promotion n'est pas active",
		"error.promotion_exhausted":  "La promotion est épuisée",
		"error.menu_item_not_found":  "Plat introuvable",
		"error.user_exists":          "Un compte existe déjà avec cet email",
		"error.user_disabled":        "Compte désactivé",
		"error.weak_password":        "Le mot de passe ne respecte pas la politique de sécurité",
		"error.password_min_length":  "Le mot de passe doit contenir au moins %d caractères",
		"error.password_require_upper":  "Le mot de passe doit contenir une majuscule",
		"error.password_require_lower":  "Le mot de passe doit contenir une minuscule",
		"error.password_require_number": "Le mot de passe doit contenir un chiffre",
		"error.password_require_special": "Le mot de passe doit contenir un caractère spécial",
		"error.captcha_required":     "Captcha requis",
		"error.captcha_invalid":      "Captcha incorrect",
		"error.captcha_unavailable":  "Captcha indisponible",
		"error.captcha_generate_failed": "Échec de génération du captcha",
		"error.captcha_verify_failed":   "Échec de vérification du captcha",
		"error.user_not_found":       "Utilisateur introuvable",
		"error.user_id_invalid":      "Identifiant utilisateur invalide",
		"error.user_id_type_invalid": "Type d'identifiant utilisateur invalide",
		"error.admin_id_invalid":      "Identifiant administrateur invalide",
		"error.admin_id_type_invalid": "Type d'identifiant administrateur invalide",
		"error.register_failed":      "Échec de la création du compte",
		"error.login_failed":         "Échec de la connexion",
		"error.password_old_invalid": "Ancien mot de passe incorrect",
		"error.save_failed":          "Échec de l'enregistrement",
		"error.fetch_failed":         "Échec de la récupération",
		"error.visit_failed":         "Échec de la validation de la visite",
		"error.qr_generate_failed":   "Échec de la génération du QR code",
		"error.dispatch_failed":      "Échec de l'envoi de la campagne",
		"error.unknown_segment":      "Segment cible inconnu",
		"error.invalid_window":       "Fenêtre de promotion invalide",
		"error.role_invalid":         "Nom de rôle invalide",
		"error.jwt_secret_missing":   "Configuration d'authentification manquante",
		"error.auth_header_missing":  "En-tête d'authentification manquant",
		"error.auth_header_invalid":  "En-tête d'authentification invalide",
		"error.token_invalid":        "Jeton invalide ou expiré",
		"error.token_revoked":        "Jeton révoqué, reconnectez-vous",
		"error.rate_limit_unavailable": "Limitation de débit indisponible, réessayez plus tard",
		"error.rate_limited":         "Trop de requêtes, réessayez dans %d secondes",
		"error.login_too_many":       "Trop de tentatives de connexion, réessayez dans %d secondes",
		"error.visit_too_many":       "Trop de validations de visite, réessayez dans %d secondes",
		"msg.ok":                     "Succès",
		"msg.visit_recorded":         "Visite validée",
	},
	LocaleEN: {
		"error.bad_request":          "Bad request",
		"error.invalid_params":       "Invalid parameters",
		"error.unauthorized":         "Authentication required",
		"error.invalid_credentials":  "Invalid credentials",
		"error.forbidden":            "Access denied",
		"error.not_found":            "Resource not found",
		"error.conflict":             "Conflict with current state",
		"error.too_many_requests":    "Too many requests, try again later",
		"error.internal":             "Internal server error",
		"error.restaurant_not_found": "Restaurant not found",
		"error.restaurant_inactive":  "This restaurant is disabled",
		"error.restaurant_has_visits": "Restaurant has recorded visits, disable it instead",
		"error.program_not_found":    "Loyalty program not found",
		"error.program_exists":       "This restaurant already has a loyalty program",
		"error.invalid_program_type": "Invalid program type",
		"error.invalid_code":         "Incorrect validation code",
		"error.invalid_amount":       "Amount must be zero or positive",
		"error.membership_not_found": "Membership not found",
		"error.customer_not_found":   "Customer not found",
		"error.campaign_not_found":   "Campaign not found",
		"error.campaign_not_draft":   "Campaign has already been sent",
		"error.promotion_not_found":  "Promotion not found",
		"error.promotion_inactive":   "Promotion is not active",
		"error.promotion_exhausted":  "Promotion is sold out",
		"error.menu_item_not_found":  "Menu item not found",
		"error.user_exists":          "An account already exists for this email",
		"error.user_disabled":        "Account disabled",
		"error.weak_password":        "Password does not meet the security policy",
		"error.password_min_length":  "Password must be at least %d characters long",
		"error.password_require_upper":  "Password must contain an uppercase letter",
		"error.password_require_lower":  "Password must contain a lowercase letter",
		"error.password_require_number": "Password must contain a digit",
		"error.password_require_special": "Password must contain a special character",
		"error.captcha_required":     "Captcha required",
		"error.captcha_invalid":      "Incorrect captcha",
		"error.captcha_unavailable":  "Captcha unavailable",
		"error.captcha_generate_failed": "Failed to generate captcha",
		"error.captcha_verify_failed":   "Failed to verify captcha",
		"error.user_not_found":       "User not found",
		"error.user_id_invalid":      "Invalid user id",
		"error.user_id_type_invalid": "Invalid user id type",
		"error.admin_id_invalid":      "Invalid admin id",
		"error.admin_id_type_invalid": "Invalid admin id type",
		"error.register_failed":      "Failed to create the account",
		"error.login_failed":         "Login failed",
		"error.password_old_invalid": "Incorrect old password",
		"error.save_failed":          "Save failed",
		"error.fetch_failed":         "Fetch failed",
		"error.visit_failed":         "Visit validation failed",
		"error.qr_generate_failed":   "Failed to generate QR code",
		"error.dispatch_failed":      "Failed to dispatch the campaign",
		"error.unknown_segment":      "Unknown target segment",
		"error.invalid_window":       "Invalid promotion window",
		"error.role_invalid":         "Invalid role name",
		"error.jwt_secret_missing":   "Authentication configuration is missing",
		"error.auth_header_missing":  "Missing authorization header",
		"error.auth_header_invalid":  "Invalid authorization header",
		"error.token_invalid":        "Invalid or expired token",
		"error.token_revoked":        "Token has been revoked, sign in again",
		"error.rate_limit_unavailable": "Rate limiting unavailable, try again later",
		"error.rate_limited":         "Too many requests, retry in %d seconds",
		"error.login_too_many":       "Too many login attempts, retry in %d seconds",
		"error.visit_too_many":       "Too many visit validations, retry in %d seconds",
		"msg.ok":                     "Success",
		"msg.visit_recorded":         "Visit recorded",
	},
}
