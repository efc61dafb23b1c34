package model

import "time"

// 文章可见性
const (
	VisibilityPublic  = "PUBLIC"
	VisibilityFriends = "FRIENDS"
	VisibilityPrivate = "PRIVATE"
)

// 文章状态
const (
	PostDraft     = "DRAFT"
	PostPublished = "PUBLISHED"
)

// 媒体类型
const (
	MediaImage = "IMAGE"
	MediaVideo = "VIDEO"
)

// BlogPost 日志文章
// Media 按 sort_order, id 排序加载；Tags 通过 post_tag 关联
type BlogPost struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	UserID     uint        `gorm:"not null;index;comment:作者ID" json:"user_id"`
	CategoryID *uint       `gorm:"index;comment:分类ID" json:"category_id"`
	Title      string      `gorm:"type:varchar(255);comment:标题" json:"title"`
	Content    string      `gorm:"type:text;comment:正文" json:"content"`
	Weather    string      `gorm:"type:varchar(64);comment:天气" json:"weather"`
	Mood       string      `gorm:"type:varchar(64);comment:心情" json:"mood"`
	Location   string      `gorm:"type:varchar(255);comment:位置" json:"location"`
	Visibility string      `gorm:"type:varchar(16);not null;default:'PUBLIC';comment:可见性" json:"visibility"`
	Status     string      `gorm:"type:varchar(16);not null;default:'PUBLISHED';index;comment:状态" json:"status"`
	CreatedAt  time.Time   `gorm:"comment:创建时间" json:"created_at"`
	UpdatedAt  time.Time   `gorm:"comment:更新时间" json:"updated_at"`
	Media      []BlogMedia `gorm:"foreignKey:PostID" json:"media"`
	Tags       []Tag       `gorm:"many2many:post_tag;joinForeignKey:PostID;joinReferences:TagID" json:"tags"`
}

func (BlogPost) TableName() string { return "blog_post" }

// BlogMedia 文章中的图片/视频及其排版参数
type BlogMedia struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PostID      uint      `gorm:"not null;index;comment:文章ID" json:"post_id"`
	MediaURL    string    `gorm:"type:varchar(512);not null;comment:媒体URL" json:"media_url"`
	MediaType   string    `gorm:"type:varchar(16);not null;default:'IMAGE';comment:媒体类型" json:"media_type"`
	Rotation    float64   `gorm:"default:0;comment:旋转角度" json:"rotation"`
	Scale       float64   `gorm:"default:1;comment:缩放" json:"scale"`
	PositionX   float64   `gorm:"default:0;comment:X坐标" json:"position_x"`
	PositionY   float64   `gorm:"default:0;comment:Y坐标" json:"position_y"`
	FilterStyle string    `gorm:"type:varchar(64);comment:滤镜" json:"filter_style"`
	ZIndex      int       `gorm:"default:0;comment:层级" json:"z_index"`
	SortOrder   int       `gorm:"default:0;comment:排序" json:"sort_order"`
	CreatedAt   time.Time `gorm:"comment:创建时间" json:"created_at"`
}

func (BlogMedia) TableName() string { return "blog_media" }

// Tag 标签，名称唯一
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(64);not null;uniqueIndex;comment:标签名" json:"name"`
	CreatedAt time.Time `gorm:"comment:创建时间" json:"created_at"`
}

func (Tag) TableName() string { return "tag" }

// PostTag 文章与标签的关联
type PostTag struct {
	PostID uint `gorm:"primaryKey;comment:文章ID"`
	TagID  uint `gorm:"primaryKey;comment:标签ID"`
}

func (PostTag) TableName() string { return "post_tag" }
