package model

import "time"

// UserRole определяет роль пользователя.
type UserRole string

const (
	RoleUser    UserRole = "user"
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "teacher"
)

// SubscriptionPlan определяет тарифный план пользователя.
type SubscriptionPlan string

const (
	PlanFree    SubscriptionPlan = "free"
	PlanPremium SubscriptionPlan = "premium"
)

// CharacterRole определяет роль персонажа в истории.
type CharacterRole string

const (
	RoleProtagonist CharacterRole = "protagonist"
	RoleSupporting  CharacterRole = "supporting"
	RoleExtra       CharacterRole = "extra"
)

// User представляет пользователя платформы.
type User struct {
	ID                    int64            `json:"id" db:"id"`
	OpenID                string           `json:"openId" db:"open_id"`
	Name                  *string          `json:"name,omitempty" db:"name"`
	Email                 *string          `json:"email,omitempty" db:"email"`
	LoginMethod           *string          `json:"loginMethod,omitempty" db:"login_method"`
	Role                  UserRole         `json:"role" db:"role"`
	SubscriptionPlan      SubscriptionPlan `json:"subscriptionPlan" db:"subscription_plan"`
	SubscriptionExpiresAt *time.Time       `json:"subscriptionExpiresAt,omitempty" db:"subscription_expires_at"`
	CreatedAt             time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt             time.Time        `json:"updatedAt" db:"updated_at"`
	LastSignedIn          time.Time        `json:"lastSignedIn" db:"last_signed_in"`
}

// Avatar - карикатурный аватар, сгенерированный из фотографии пользователя.
// Храним и оригинал, и сгенерированное изображение (URL + ключ в хранилище),
// чтобы не зависеть от времени жизни URL внешнего генератора.
type Avatar struct {
	ID               int64     `json:"id" db:"id"`
	UserID           int64     `json:"userId" db:"user_id"`
	Name             string    `json:"name" db:"name"`
	OriginalPhotoURL string    `json:"originalPhotoUrl" db:"original_photo_url"`
	OriginalPhotoKey string    `json:"originalPhotoKey" db:"original_photo_key"`
	AvatarImageURL   string    `json:"avatarImageUrl" db:"avatar_image_url"`
	AvatarImageKey   string    `json:"avatarImageKey" db:"avatar_image_key"`
	GenerationPrompt *string   `json:"generationPrompt,omitempty" db:"generation_prompt"`
	IsPublic         bool      `json:"isPublic" db:"is_public"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`
}

// Story представляет историю с жизненным циклом статусов.
type Story struct {
	ID              int64       `json:"id" db:"id"`
	UserID          int64       `json:"userId" db:"user_id"`
	Title           string      `json:"title" db:"title"`
	Theme           string      `json:"theme" db:"theme"`
	TargetAge       *int        `json:"targetAge,omitempty" db:"target_age"`
	EducationalGoal *string     `json:"educationalGoal,omitempty" db:"educational_goal"`
	Status          StoryStatus `json:"status" db:"status"`
	ErrorDetails    *string     `json:"errorDetails,omitempty" db:"error_details"` // Причина статуса failed
	IsPublic        bool        `json:"isPublic" db:"is_public"`
	CoverImageURL   *string     `json:"coverImageUrl,omitempty" db:"cover_image_url"`
	CoverImageKey   *string     `json:"coverImageKey,omitempty" db:"cover_image_key"`
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time   `json:"updatedAt" db:"updated_at"`
}

// Chapter - одна глава истории. Создается только фазой генерации;
// уникальность chapter_number внутри истории ожидается, но не гарантируется БД.
type Chapter struct {
	ID            int64     `json:"id" db:"id"`
	StoryID       int64     `json:"storyId" db:"story_id"`
	ChapterNumber int       `json:"chapterNumber" db:"chapter_number"`
	Title         string    `json:"title" db:"title"`
	Content       string    `json:"content" db:"content"`
	NarratorText  *string   `json:"narratorText,omitempty" db:"narrator_text"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// StoryCharacter связывает историю с аватаром. Имя копируется из аватара
// в момент создания и дальше может расходиться с именем самого аватара.
type StoryCharacter struct {
	ID                   int64         `json:"id" db:"id"`
	StoryID              int64         `json:"storyId" db:"story_id"`
	AvatarID             int64         `json:"avatarId" db:"avatar_id"`
	CharacterName        string        `json:"characterName" db:"character_name"`
	CharacterRole        CharacterRole `json:"characterRole" db:"character_role"`
	CharacterDescription *string       `json:"characterDescription,omitempty" db:"character_description"`
	CreatedAt            time.Time     `json:"createdAt" db:"created_at"`
}

// CharacterAudio - аудиозапись пользователя для персонажа, опционально
// привязанная к главе.
type CharacterAudio struct {
	ID               int64     `json:"id" db:"id"`
	StoryCharacterID int64     `json:"storyCharacterId" db:"story_character_id"`
	ChapterID        *int64    `json:"chapterId,omitempty" db:"chapter_id"`
	AudioURL         string    `json:"audioUrl" db:"audio_url"`
	AudioKey         string    `json:"audioKey" db:"audio_key"`
	Duration         *int      `json:"duration,omitempty" db:"duration"` // Приблизительная длительность в секундах
	Transcription    *string   `json:"transcription,omitempty" db:"transcription"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
}

// Classroom - класс/группа для учительского режима.
type Classroom struct {
	ID          int64     `json:"id" db:"id"`
	TeacherID   int64     `json:"teacherId" db:"teacher_id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	GradeLevel  *string   `json:"gradeLevel,omitempty" db:"grade_level"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// ClassroomStudent - ученик, добавленный в класс.
type ClassroomStudent struct {
	ID          int64     `json:"id" db:"id"`
	ClassroomID int64     `json:"classroomId" db:"classroom_id"`
	StudentName string    `json:"studentName" db:"student_name"`
	StudentCode *string   `json:"studentCode,omitempty" db:"student_code"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// ClassroomStory - история, расшаренная в класс.
type ClassroomStory struct {
	ID          int64     `json:"id" db:"id"`
	ClassroomID int64     `json:"classroomId" db:"classroom_id"`
	StoryID     int64     `json:"storyId" db:"story_id"`
	SharedAt    time.Time `json:"sharedAt" db:"shared_at"`
}

// StoryDetails - история вместе с главами (упорядоченными по номеру)
// и персонажами, как её отдает GET /api/stories/:id.
type StoryDetails struct {
	Story      Story            `json:"story"`
	Chapters   []Chapter        `json:"chapters"`
	Characters []StoryCharacter `json:"characters"`
}
