package model

type Country struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"uniqueIndex;not null" json:"name"`
	Code3 string `gorm:"uniqueIndex;size:3;not null" json:"code3"`

	Cities []City `gorm:"foreignKey:CountryID;constraint:OnDelete:CASCADE" json:"-"`
}

type City struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	CountryID uint   `gorm:"index;not null" json:"country_id"`
	Name      string `gorm:"index;not null" json:"name"`
}
