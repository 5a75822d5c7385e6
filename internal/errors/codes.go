package errors

// Error code constants returned in the "error" field of failed responses.
// Format: CATEGORY_SPECIFIC_DETAIL. The frontend maps these to messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthLoginExists        = "AUTH_LOGIN_EXISTS"
	AuthEmailExists        = "AUTH_EMAIL_EXISTS"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden      = "AUTHZ_FORBIDDEN"
	AuthzRoleNotFound   = "AUTHZ_ROLE_NOT_FOUND"
	AuthzAdminOnly      = "AUTHZ_ADMIN_ONLY"
	AuthzOwnerOnly      = "AUTHZ_OWNER_ONLY"
	AuthzSelfDeletion   = "AUTHZ_SELF_DELETION"
	AuthzProtectedAdmin = "AUTHZ_PROTECTED_ADMIN"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Catalog (PRODUCT_ / BRAND_) ====================
	ProductNotFound    = "PRODUCT_NOT_FOUND"
	BrandNotFound      = "BRAND_NOT_FOUND"
	BrandAlreadyExists = "BRAND_ALREADY_EXISTS"
	BrandInUse         = "BRAND_IN_USE"

	// ==================== Cart (CART_) ====================
	CartInvalidDelta      = "CART_INVALID_DELTA"
	CartInsufficientStock = "CART_INSUFFICIENT_STOCK"
	CartItemNotFound      = "CART_ITEM_NOT_FOUND"

	// ==================== Ratings (RATING_) ====================
	RatingInvalidValue = "RATING_INVALID_VALUE"

	// ==================== Comments (COMMENT_) ====================
	CommentNotFound       = "COMMENT_NOT_FOUND"
	CommentParentNotFound = "COMMENT_PARENT_NOT_FOUND"

	// ==================== Users (USER_) ====================
	UserNotFound = "USER_NOT_FOUND"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
