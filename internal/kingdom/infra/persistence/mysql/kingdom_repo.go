package mysql

import (
	"context"
	"encoding/json"
	"errors"

	"LandKingdom/internal/kingdom/domain"
	"LandKingdom/internal/kingdom/infra/persistence/model"
	"LandKingdom/internal/kingdom/state"
	"LandKingdom/modules/kit/errx"

	"gorm.io/gorm"
)

type KingdomRepo struct {
	db *gorm.DB
}

func NewKingdomRepo(db *gorm.DB) *KingdomRepo {
	return &KingdomRepo{db: db}
}

// AutoMigrate 建表，启动时调用一次。
func (r *KingdomRepo) AutoMigrate() error {
	return r.db.AutoMigrate(&model.KingdomLedger{}, &model.Land{})
}

func (r *KingdomRepo) WithTx(tx *gorm.DB) *KingdomRepo {
	return &KingdomRepo{
		db: tx,
	}
}

const OpLoadKingdom = "repo.kingdom.Load"

func (r *KingdomRepo) Load(ctx context.Context) (*state.PersistSnapshot, error) {
	var row model.KingdomLedger
	err := r.db.WithContext(ctx).Where("id = ?", model.LedgerDocID).First(&row).Error
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, errx.ErrUnavailable.WithCause(err).WithData("op", OpLoadKingdom)
	}

	var doc model.LedgerDoc
	if err := json.Unmarshal([]byte(row.Payload), &doc); err != nil {
		return nil, errx.ErrInternal.WithCause(err).WithData("op", OpLoadKingdom)
	}
	doc.Version = row.Version

	var rows []model.Land
	if err := r.db.WithContext(ctx).Order("land_id").Find(&rows).Error; err != nil {
		return nil, errx.ErrUnavailable.WithCause(err).WithData("op", OpLoadKingdom)
	}
	lands := make([]domain.Land, 0, len(rows))
	for i := range rows {
		l, err := model.LandModelToDomain(&rows[i])
		if err != nil {
			return nil, errx.ErrInternal.WithCause(err).WithData("landId", rows[i].LandId)
		}
		lands = append(lands, l)
	}
	return model.LedgerDocToSnapshot(doc, lands)
}

const (
	OpSaveLands  = "repo.kingdom.SaveLands"
	OpSaveLedger = "repo.kingdom.SaveLedger"
)

// Save 在一个事务里写入变化的地块与账本。
func (r *KingdomRepo) Save(ctx context.Context, s *state.PersistSnapshot) error {
	if s == nil {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := r.WithTx(tx)
		if err := txRepo.saveLands(ctx, s.Lands); err != nil {
			return err
		}
		if s.KingdomChanged {
			if err := txRepo.saveLedger(ctx, s); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *KingdomRepo) saveLands(ctx context.Context, lands []domain.Land) error {
	if len(lands) == 0 {
		return nil
	}
	rows := make([]*model.Land, 0, len(lands))
	for _, l := range lands {
		rows = append(rows, model.LandToModel(l))
	}
	if err := r.db.WithContext(ctx).Save(rows).Error; err != nil {
		return errx.ErrUnavailable.WithCause(err).WithData("op", OpSaveLands)
	}
	return nil
}

func (r *KingdomRepo) saveLedger(ctx context.Context, s *state.PersistSnapshot) error {
	doc := model.SnapshotToLedgerDoc(s)
	payload, err := json.Marshal(doc)
	if err != nil {
		return errx.ErrInternal.WithCause(err).WithData("op", OpSaveLedger)
	}
	row := &model.KingdomLedger{
		Id:        model.LedgerDocID,
		Version:   s.Version,
		Payload:   string(payload),
		UpdatedAt: doc.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return errx.ErrUnavailable.WithCause(err).WithData("op", OpSaveLedger).WithData("version", s.Version)
	}
	return nil
}
