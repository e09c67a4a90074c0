package database

import (
	"log"

	"github.com/reservaa/hall-booking-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Faculty{}, &models.Hall{}, &models.Booking{}, &models.Workshop{}); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Booking codes are looked up by the public code endpoint and regenerated
	// on collision, so the column must be unique.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_code
		ON bookings (booking_code)
	`)

	return db
}

// SeedHalls inserts the default hall catalog when the table is empty.
func SeedHalls(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.Hall{}).Count(&count).Error; err != nil {
		log.Printf("[Database] hall count: %v", err)
		return
	}
	if count > 0 {
		return
	}

	halls := []models.Hall{
		{
			Name:       "A101",
			Type:       "Seminar Hall",
			Capacity:   120,
			Location:   "Block A, First Floor",
			Facilities: []byte(`["Projector","Podium","Whiteboard"]`),
			Amenities:  []byte(`["Air Conditioning","WiFi"]`),
		},
		{
			Name:       "B201",
			Type:       "Seminar Hall",
			Capacity:   80,
			Location:   "Block B, Second Floor",
			Facilities: []byte(`["Projector","Whiteboard"]`),
			Amenities:  []byte(`["WiFi"]`),
		},
		{
			Name:       "Main Auditorium",
			Type:       "Auditorium",
			Capacity:   500,
			Location:   "Central Block",
			Facilities: []byte(`["Stage","Sound System","Projector","Green Room"]`),
			Amenities:  []byte(`["Air Conditioning","WiFi","Parking"]`),
		},
	}
	for i := range halls {
		halls[i].IsActive = true
	}
	if err := db.Create(&halls).Error; err != nil {
		log.Printf("[Database] seed halls: %v", err)
		return
	}
	log.Printf("[Database] seeded %d halls", len(halls))
}
