package repo

import (
	"UserPrefs/internal/model"
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository хранит пользователей в таблице users через gorm.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository создаёт SQL-реализацию UserRepository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Load(ctx context.Context) (*model.Users, error) {
	var rows []model.User
	if err := r.db.WithContext(ctx).Order("position ASC").Find(&rows).Error; err != nil {
		return nil, storageErr("load", "", err)
	}

	users := model.NewUsers()
	for _, row := range rows {
		rec := model.UserRecord{
			Password: row.Password,
			Settings: model.Settings{BgColor: row.BgColor, FontColor: row.FontColor},
		}
		if row.Username == "" || rec.Password == "" || !users.Insert(row.Username, rec) {
			return nil, storageErr("load", "", fmt.Errorf("invalid or duplicate user row %q", row.Username))
		}
	}
	return users, nil
}

func (r *GormUserRepository) Save(ctx context.Context, users *model.Users) error {
	names := users.Names()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// удаляем то, чего нет в отображении: Save, полная перезапись
		del := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if len(names) > 0 {
			del = del.Where("username NOT IN ?", names)
		}
		if err := del.Delete(&model.User{}).Error; err != nil {
			return err
		}

		for i, name := range names {
			rec, _ := users.Get(name)
			row := model.User{
				Username:  name,
				Password:  rec.Password,
				BgColor:   rec.Settings.BgColor,
				FontColor: rec.Settings.FontColor,
				Position:  int64(i),
			}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return storageErr("save", "", err)
	}
	return nil
}
