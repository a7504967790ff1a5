package repo

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"wallboard-backend/internal/models"
)

// messageRow and folderRow are the table shapes behind DBStore. Comments and
// position stay JSON columns so the snapshot round-trips losslessly without
// extra tables.
type messageRow struct {
	ID       int64  `gorm:"primarykey"`
	Text     string `gorm:"not null"`
	Image    string
	Time     string
	Color    string
	FolderID *int64
	Comments datatypes.JSON
	Position datatypes.JSON
	Expanded bool
}

func (messageRow) TableName() string { return "messages" }

type folderRow struct {
	ID        int64  `gorm:"primarykey"`
	Name      string `gorm:"not null"`
	CreatedAt string
	Password  *string
	IsLocked  bool
}

func (folderRow) TableName() string { return "folders" }

// DBStore honors the same whole-snapshot read/write contract as FileStore,
// backed by gorm. Write replaces every row inside one transaction; across
// concurrent callers it is still last write wins on the whole snapshot.
type DBStore struct {
	db *gorm.DB
}

func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) AutoMigrate() error {
	return s.db.AutoMigrate(&messageRow{}, &folderRow{})
}

func (s *DBStore) Read() (models.Snapshot, error) {
	snap := models.EmptySnapshot()

	var msgRows []messageRow
	if err := s.db.Order("id").Find(&msgRows).Error; err != nil {
		return models.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	for _, r := range msgRows {
		m := models.Message{
			ID:       r.ID,
			Text:     r.Text,
			Image:    r.Image,
			Time:     r.Time,
			Color:    r.Color,
			FolderID: r.FolderID,
			Expanded: r.Expanded,
			Comments: []models.Comment{},
		}
		if len(r.Comments) > 0 {
			if err := json.Unmarshal(r.Comments, &m.Comments); err != nil {
				return models.Snapshot{}, fmt.Errorf("decode comments for message %d: %w", r.ID, err)
			}
		}
		if len(r.Position) > 0 {
			var pos models.Position
			if err := json.Unmarshal(r.Position, &pos); err != nil {
				return models.Snapshot{}, fmt.Errorf("decode position for message %d: %w", r.ID, err)
			}
			m.Position = &pos
		}
		snap.Messages = append(snap.Messages, m)
	}

	var fldRows []folderRow
	if err := s.db.Order("id").Find(&fldRows).Error; err != nil {
		return models.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	for _, r := range fldRows {
		snap.Folders = append(snap.Folders, models.Folder{
			ID:        r.ID,
			Name:      r.Name,
			CreatedAt: r.CreatedAt,
			Password:  r.Password,
			IsLocked:  r.IsLocked,
		})
	}

	snap.Normalize()
	return snap, nil
}

func (s *DBStore) Write(snap models.Snapshot) error {
	msgRows := make([]messageRow, 0, len(snap.Messages))
	for _, m := range snap.Messages {
		row := messageRow{
			ID:       m.ID,
			Text:     m.Text,
			Image:    m.Image,
			Time:     m.Time,
			Color:    m.Color,
			FolderID: m.FolderID,
			Expanded: m.Expanded,
		}
		comments, err := json.Marshal(m.Comments)
		if err != nil {
			return fmt.Errorf("encode comments for message %d: %w", m.ID, err)
		}
		row.Comments = datatypes.JSON(comments)
		if m.Position != nil {
			pos, err := json.Marshal(m.Position)
			if err != nil {
				return fmt.Errorf("encode position for message %d: %w", m.ID, err)
			}
			row.Position = datatypes.JSON(pos)
		}
		msgRows = append(msgRows, row)
	}

	fldRows := make([]folderRow, 0, len(snap.Folders))
	for _, f := range snap.Folders {
		fldRows = append(fldRows, folderRow{
			ID:        f.ID,
			Name:      f.Name,
			CreatedAt: f.CreatedAt,
			Password:  f.Password,
			IsLocked:  f.IsLocked,
		})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&messageRow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&folderRow{}).Error; err != nil {
			return err
		}
		if len(fldRows) > 0 {
			if err := tx.Create(&fldRows).Error; err != nil {
				return err
			}
		}
		if len(msgRows) > 0 {
			if err := tx.Create(&msgRows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
