package bunstore

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/xraph/prospect"
	"github.com/xraph/prospect/business"
)

type businessModel struct {
	bun.BaseModel `bun:"table:businesses"`

	FEIN      string            `bun:"fein,pk"`
	Name      string            `bun:"name,notnull"`
	Industry  string            `bun:"industry,nullzero"`
	Contact   *business.Contact `bun:"contact,type:jsonb"`
	Status    string            `bun:"status,notnull"`
	Version   int64             `bun:"version,notnull"`
	CreatedAt time.Time         `bun:"created_at,notnull"`
	UpdatedAt time.Time         `bun:"updated_at,notnull"`
}

func toBusinessModel(b *business.Business) *businessModel {
	m := &businessModel{
		FEIN:      b.FEIN,
		Name:      b.Name,
		Industry:  b.Industry,
		Status:    string(b.Status),
		Version:   b.Version,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if b.Contact != nil {
		c := *b.Contact
		m.Contact = &c
	}
	return m
}

func fromBusinessModel(m *businessModel) *business.Business {
	return &business.Business{
		Entity: prospect.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		FEIN:     m.FEIN,
		Name:     m.Name,
		Industry: m.Industry,
		Contact:  m.Contact,
		Status:   business.Status(m.Status),
		Version:  m.Version,
	}
}
