package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

const (
	// DBContextKey - ключ, по которому в gin.Context лежит *gorm.DB
	DBContextKey = contextKey("db")

	// UserIDKey - ID пользователя, выполняющего запрос (для аудита createdBy/updatedBy/deletedBy)
	UserIDKey = contextKey("userID")
)
