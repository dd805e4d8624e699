package model

import (
	"time"

	"LandKingdom/internal/kingdom/domain"
)

// LandDoc 是地块文档（mongodb）；金额以十进制字符串存储。
type LandDoc struct {
	ID               uint64       `bson:"_id" json:"id"`
	Tier             uint8        `bson:"tier" json:"tier"`
	Stats            domain.Stats `bson:"stats" json:"stats"`
	Appearance       uint32       `bson:"appearance" json:"appearance"`
	Name             string       `bson:"name" json:"name"`
	ListedForSale    bool         `bson:"listed_for_sale" json:"listedForSale"`
	Price            string       `bson:"price" json:"price"`
	LastTierChangeAt int64        `bson:"last_tier_change_at" json:"lastTierChangeAt"`
}

// model
type Land struct {
	LandId           uint64    `gorm:"column:land_id;type:bigint UNSIGNED;comment:地块编号;primaryKey;not null;" json:"land_id"`
	Tier             uint8     `gorm:"column:tier;type:tinyint UNSIGNED;comment:等级;not null;default:0;" json:"tier"`
	Fertility        uint32    `gorm:"column:fertility;type:int UNSIGNED;comment:肥力;not null;default:0;" json:"fertility"`
	Wealth           uint32    `gorm:"column:wealth;type:int UNSIGNED;comment:财富;not null;default:0;" json:"wealth"`
	Defense          uint32    `gorm:"column:defense;type:int UNSIGNED;comment:防御;not null;default:0;" json:"defense"`
	Prestige         uint32    `gorm:"column:prestige;type:int UNSIGNED;comment:声望;not null;default:0;" json:"prestige"`
	Appearance       uint32    `gorm:"column:appearance;type:int UNSIGNED;comment:外观;not null;default:0;" json:"appearance"`
	Name             string    `gorm:"column:name;type:varchar(100);comment:地块名称;not null;default:'';" json:"name"`
	ListedForSale    bool      `gorm:"column:listed_for_sale;type:tinyint(1);comment:是否挂单;not null;default:0;" json:"listed_for_sale"`
	Price            string    `gorm:"column:price;type:varchar(80);comment:挂单价格(wei);not null;default:'0';" json:"price"`
	LastTierChangeAt int64     `gorm:"column:last_tier_change_at;type:bigint;comment:最近升阶时间;not null;default:0;" json:"last_tier_change_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at;type:timestamp;not null;default:CURRENT_TIMESTAMP;" json:"updated_at"`
}

func (m *Land) TableName() string {
	return "kingdom_land"
}

func LandToDoc(l domain.Land) LandDoc {
	return LandDoc{
		ID:               uint64(l.ID),
		Tier:             uint8(l.Tier),
		Stats:            l.Stats,
		Appearance:       l.Appearance,
		Name:             l.Name,
		ListedForSale:    l.ListedForSale,
		Price:            l.Price.String(),
		LastTierChangeAt: l.LastTierChangeAt,
	}
}

func LandDocToDomain(d LandDoc) (domain.Land, error) {
	price, err := parseWei(d.Price)
	if err != nil {
		return domain.Land{}, err
	}
	return domain.Land{
		ID:               domain.LandID(d.ID),
		Tier:             domain.Tier(d.Tier),
		Stats:            d.Stats,
		Appearance:       d.Appearance,
		Name:             d.Name,
		ListedForSale:    d.ListedForSale,
		Price:            domain.NewWei256(price),
		LastTierChangeAt: d.LastTierChangeAt,
	}, nil
}

func LandToModel(l domain.Land) *Land {
	return &Land{
		LandId:           uint64(l.ID),
		Tier:             uint8(l.Tier),
		Fertility:        l.Stats.Fertility,
		Wealth:           l.Stats.Wealth,
		Defense:          l.Stats.Defense,
		Prestige:         l.Stats.Prestige,
		Appearance:       l.Appearance,
		Name:             l.Name,
		ListedForSale:    l.ListedForSale,
		Price:            l.Price.String(),
		LastTierChangeAt: l.LastTierChangeAt,
		UpdatedAt:        time.Now(),
	}
}

func LandModelToDomain(m *Land) (domain.Land, error) {
	return LandDocToDomain(LandDoc{
		ID:               m.LandId,
		Tier:             m.Tier,
		Stats:            domain.Stats{Fertility: m.Fertility, Wealth: m.Wealth, Defense: m.Defense, Prestige: m.Prestige},
		Appearance:       m.Appearance,
		Name:             m.Name,
		ListedForSale:    m.ListedForSale,
		Price:            m.Price,
		LastTierChangeAt: m.LastTierChangeAt,
	})
}
