package services

import (
	"context"
	"sort"
	"time"

	"gorent/internal/models"
	"gorent/internal/repositories/interfaces"
	"gorent/internal/utils"
	"gorent/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReportService builds admin reports by loading the bookings for a window
// and grouping in memory. The data volumes here are small enough that an
// aggregation pipeline would buy latency at the cost of four unreadable
// queries.
type ReportService interface {
	BookingsReport(ctx context.Context, from, to time.Time) (*BookingsReport, error)
	RevenueReport(ctx context.Context, from, to time.Time) (*RevenueReport, error)
	CarsReport(ctx context.Context, from, to time.Time) (*CarsReport, error)
	UsersReport(ctx context.Context, from, to time.Time) (*UsersReport, error)
}

type reportService struct {
	bookingRepo  interfaces.BookingRepository
	carRepo      interfaces.CarRepository
	userRepo     interfaces.UserRepository
	locationRepo interfaces.LocationRepository
	logger       *logger.Logger
}

type ReportRange struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

type BookingsReport struct {
	Range         ReportRange            `json:"range"`
	TotalBookings int                    `json:"total_bookings"`
	ByLocation    []*LocationBookingsRow `json:"by_location"`
}

type LocationBookingsRow struct {
	LocationID   string         `json:"location_id"`
	LocationName string         `json:"location_name"`
	Bookings     int            `json:"bookings"`
	ByStatus     map[string]int `json:"by_status"`
}

type RevenueReport struct {
	Range        ReportRange          `json:"range"`
	TotalRevenue float64              `json:"total_revenue"`
	ByMonth      []*MonthlyRevenueRow `json:"by_month"`
}

type MonthlyRevenueRow struct {
	Month    string  `json:"month"`
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

type CarsReport struct {
	Range ReportRange `json:"range"`
	Cars  []*CarUsageRow `json:"cars"`
}

type CarUsageRow struct {
	CarID         string  `json:"car_id"`
	CarNumber     string  `json:"car_number"`
	Brand         string  `json:"brand"`
	Model         string  `json:"model"`
	Bookings      int     `json:"bookings"`
	BookedDays    int     `json:"booked_days"`
	Revenue       float64 `json:"revenue"`
	AverageRating float64 `json:"average_rating"`
}

type UsersReport struct {
	Range ReportRange    `json:"range"`
	Users []*UserTotalsRow `json:"users"`
}

type UserTotalsRow struct {
	UserID        string  `json:"user_id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Bookings      int     `json:"bookings"`
	Cancellations int     `json:"cancellations"`
	TotalSpent    float64 `json:"total_spent"`
}

func NewReportService(
	bookingRepo interfaces.BookingRepository,
	carRepo interfaces.CarRepository,
	userRepo interfaces.UserRepository,
	locationRepo interfaces.LocationRepository,
	logger *logger.Logger,
) ReportService {
	return &reportService{
		bookingRepo:  bookingRepo,
		carRepo:      carRepo,
		userRepo:     userRepo,
		locationRepo: locationRepo,
		logger:       logger,
	}
}

func reportRange(from, to time.Time) ReportRange {
	r := ReportRange{}
	if !from.IsZero() {
		r.From = &from
	}
	if !to.IsZero() {
		r.To = &to
	}
	return r
}

func (s *reportService) BookingsReport(ctx context.Context, from, to time.Time) (*BookingsReport, error) {
	bookings, err := s.bookingRepo.GetByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	names := map[string]string{}
	if locations, err := s.locationRepo.GetAll(ctx); err == nil {
		for _, location := range locations {
			names[location.ID.Hex()] = location.Name
		}
	} else {
		s.logger.WithError(err).Warn("Failed to load locations for bookings report")
	}

	rows := map[string]*LocationBookingsRow{}
	for _, booking := range bookings {
		key := ""
		if booking.PickupLocationID != nil {
			key = booking.PickupLocationID.Hex()
		}
		row, ok := rows[key]
		if !ok {
			name := names[key]
			if key == "" {
				name = "unspecified"
			}
			row = &LocationBookingsRow{
				LocationID:   key,
				LocationName: name,
				ByStatus:     map[string]int{},
			}
			rows[key] = row
		}
		row.Bookings++
		row.ByStatus[string(booking.Status)]++
	}

	report := &BookingsReport{
		Range:         reportRange(from, to),
		TotalBookings: len(bookings),
		ByLocation:    make([]*LocationBookingsRow, 0, len(rows)),
	}
	for _, row := range rows {
		report.ByLocation = append(report.ByLocation, row)
	}
	sort.Slice(report.ByLocation, func(i, j int) bool {
		return report.ByLocation[i].Bookings > report.ByLocation[j].Bookings
	})

	return report, nil
}

func (s *reportService) RevenueReport(ctx context.Context, from, to time.Time) (*RevenueReport, error) {
	bookings, err := s.bookingRepo.GetByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	rows := map[string]*MonthlyRevenueRow{}
	total := 0.0
	for _, booking := range bookings {
		// Only money actually collected counts as revenue.
		if booking.PaymentStatus != models.PaymentStatusPaid {
			continue
		}
		month := utils.MonthKey(booking.PickupTime)
		row, ok := rows[month]
		if !ok {
			row = &MonthlyRevenueRow{Month: month}
			rows[month] = row
		}
		row.Bookings++
		row.Revenue += booking.TotalPrice
		total += booking.TotalPrice
	}

	report := &RevenueReport{
		Range:        reportRange(from, to),
		TotalRevenue: total,
		ByMonth:      make([]*MonthlyRevenueRow, 0, len(rows)),
	}
	for _, row := range rows {
		report.ByMonth = append(report.ByMonth, row)
	}
	sort.Slice(report.ByMonth, func(i, j int) bool {
		return report.ByMonth[i].Month < report.ByMonth[j].Month
	})

	return report, nil
}

func (s *reportService) CarsReport(ctx context.Context, from, to time.Time) (*CarsReport, error) {
	bookings, err := s.bookingRepo.GetByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	rows := map[primitive.ObjectID]*CarUsageRow{}
	for _, booking := range bookings {
		row, ok := rows[booking.CarID]
		if !ok {
			row = &CarUsageRow{CarID: booking.CarID.Hex()}
			if car, err := s.carRepo.GetByID(ctx, booking.CarID); err == nil {
				row.CarNumber = car.CarNumber
				row.Brand = car.Brand
				row.Model = car.Model
				row.AverageRating = car.AverageRating
			}
			rows[booking.CarID] = row
		}
		row.Bookings++
		if booking.Status != models.BookingStatusCancelled {
			row.BookedDays += booking.RentalDays
		}
		if booking.PaymentStatus == models.PaymentStatusPaid {
			row.Revenue += booking.TotalPrice
		}
	}

	report := &CarsReport{
		Range: reportRange(from, to),
		Cars:  make([]*CarUsageRow, 0, len(rows)),
	}
	for _, row := range rows {
		report.Cars = append(report.Cars, row)
	}
	sort.Slice(report.Cars, func(i, j int) bool {
		return report.Cars[i].Revenue > report.Cars[j].Revenue
	})

	return report, nil
}

func (s *reportService) UsersReport(ctx context.Context, from, to time.Time) (*UsersReport, error) {
	bookings, err := s.bookingRepo.GetByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	rows := map[primitive.ObjectID]*UserTotalsRow{}
	for _, booking := range bookings {
		row, ok := rows[booking.UserID]
		if !ok {
			row = &UserTotalsRow{UserID: booking.UserID.Hex()}
			if user, err := s.userRepo.GetByID(ctx, booking.UserID); err == nil {
				row.Name = user.FullName()
				row.Email = user.Email
			}
			rows[booking.UserID] = row
		}
		row.Bookings++
		if booking.Status == models.BookingStatusCancelled {
			row.Cancellations++
		}
		if booking.PaymentStatus == models.PaymentStatusPaid {
			row.TotalSpent += booking.TotalPrice
		}
	}

	report := &UsersReport{
		Range: reportRange(from, to),
		Users: make([]*UserTotalsRow, 0, len(rows)),
	}
	for _, row := range rows {
		report.Users = append(report.Users, row)
	}
	sort.Slice(report.Users, func(i, j int) bool {
		return report.Users[i].TotalSpent > report.Users[j].TotalSpent
	})

	return report, nil
}
