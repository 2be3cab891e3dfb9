package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Case struct {
	Id     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId uuid.UUID `gorm:"type:uuid;not null;index"`

	DocumentType string `gorm:"type:varchar(50);not null;default:'tutela';column:tipo_documento"`

	ApplicantName           string `gorm:"type:varchar(255);column:nombre_solicitante"`
	ApplicantIdentification string `gorm:"type:varchar(50);column:identificacion_solicitante"`
	ApplicantAddress        string `gorm:"type:varchar(255);column:direccion_solicitante"`
	ApplicantPhone          string `gorm:"type:varchar(50);column:telefono_solicitante"`
	ApplicantEmail          string `gorm:"type:varchar(255);column:email_solicitante"`

	ActsInRepresentation      bool   `gorm:"default:false;column:actua_en_representacion"`
	RepresentedName           string `gorm:"type:varchar(255);column:nombre_representado"`
	RepresentedIdentification string `gorm:"type:varchar(50);column:identificacion_representado"`
	RepresentedRelation       string `gorm:"type:varchar(100);column:relacion_representado"`
	RepresentedType           string `gorm:"type:varchar(50);column:tipo_representado"`

	AccusedEntity  string `gorm:"type:varchar(255);column:entidad_accionada"`
	EntityAddress  string `gorm:"type:varchar(255);column:direccion_entidad"`
	Facts          string `gorm:"type:text;column:hechos"`
	FactsCity      string `gorm:"type:varchar(100);column:ciudad_de_los_hechos"`
	ViolatedRights string `gorm:"type:text;column:derechos_vulnerados"`
	Claims         string `gorm:"type:text;column:pretensiones"`
	LegalGrounds   string `gorm:"type:text;column:fundamentos_derecho"`
	Evidence       string `gorm:"type:text;column:pruebas"`

	HasGeneratedDocument bool           `gorm:"default:false"`
	GeneratedDocument    string         `gorm:"type:text"`
	GeneratedAt          *time.Time     ``
	QualityScore         *float64       ``
	Citations            datatypes.JSON `gorm:"type:jsonb"`
	Suggestions          datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Case) TableName() string {
	return "cases"
}
