package model

import "gorm.io/gorm"

// Migrate 注册 post_tag 关联表并迁移全部表结构
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&BlogPost{}, "Tags", &PostTag{}); err != nil {
		return err
	}
	return db.AutoMigrate(
		&User{},
		&Friendship{},
		&Category{},
		&Tag{},
		&BlogPost{},
		&BlogMedia{},
		&PostTag{},
		&Comment{},
		&Message{},
		&Notification{},
	)
}
