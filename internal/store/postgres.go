package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"roombook/infras/otel"
	"roombook/infras/postgres"
	bookingModel "roombook/internal/domains/booking/model"
	customerModel "roombook/internal/domains/customer/model"
	roomModel "roombook/internal/domains/room/model"
	"roombook/shared"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	"roombook/shared/failure"
	"roombook/shared/repository"
)

// postgresStore serializes reservations per room with a row lock on the room,
// taken inside the same transaction that reads the existing bookings and inserts the new one.
type postgresStore struct {
	db           *postgres.Connection
	otel         otel.Otel
	roomRepo     repository.Repository[roomModel.Room]
	bookingRepo  repository.Repository[bookingModel.Booking]
	customerRepo repository.Repository[customerModel.Customer]
}

func NewPostgres(db *postgres.Connection, otl otel.Otel) Store {
	return &postgresStore{
		db:   db,
		otel: otl,
		roomRepo: repository.NewRepository[roomModel.Room](
			roomModel.EntityName, roomModel.TableName, roomModel.FieldID, db, otl,
		),
		bookingRepo: repository.NewRepository[bookingModel.Booking](
			bookingModel.EntityName, bookingModel.TableName, bookingModel.FieldID, db, otl,
		),
		customerRepo: repository.NewRepository[customerModel.Customer](
			customerModel.EntityName, customerModel.TableName, customerModel.FieldBookingID, db, otl,
		),
	}
}

func (p *postgresStore) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := p.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err == nil {
			return
		}

		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Error().Err(rbErr).Msg("failed to rollback transaction")
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (p *postgresStore) CreateRoom(ctx context.Context, room roomModel.Room) (res roomModel.Room, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".postgres.CreateRoom")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = p.withTx(ctx, func(tx *sqlx.Tx) error {
		id, err := p.roomRepo.NextIDTx(ctx, tx)
		if err != nil {
			return fmt.Errorf("failed to reserve room id: %w", err)
		}

		room.ID = id

		if err := p.roomRepo.InsertTx(ctx, tx, room); err != nil {
			return fmt.Errorf("failed to insert room: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, err
	}

	return room, nil
}

func (p *postgresStore) ListRooms(ctx context.Context) ([]roomModel.Room, error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".postgres.ListRooms")
	defer scope.End()

	rooms, err := p.roomRepo.GetAll(ctx, gDto.InsertionOrder(), gDto.FilterGroup{})
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	return rooms, nil
}

func (p *postgresStore) FindRoom(ctx context.Context, id int64) (roomModel.Room, bool, error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".postgres.FindRoom")
	defer scope.End()

	room, found, err := p.roomRepo.Get(ctx, shared.FilterByID(id, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		return room, false, fmt.Errorf("failed to find room: %w", err)
	}

	return room, found, nil
}

func (p *postgresStore) CreateBooking(ctx context.Context, booking bookingModel.Booking, check ConflictCheck) (res bookingModel.Booking, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".postgres.CreateBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = p.withTx(ctx, func(tx *sqlx.Tx) error {
		_, found, err := p.roomRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		if !found {
			return failure.NotFound(errRoomNotFound) // nolint:wrapcheck
		}

		existing, err := p.bookingRepo.GetAllTx(ctx, tx, gDto.InsertionOrder(), shared.FilterByFields(
			bookingModel.TableName,
			bookingModel.FieldRoomID, booking.RoomID,
			bookingModel.FieldDate, booking.Date,
		))
		if err != nil {
			return fmt.Errorf("failed to load bookings for slot: %w", err)
		}

		if check != nil {
			if err := check(existing); err != nil {
				return err
			}
		}

		id, err := p.bookingRepo.NextIDTx(ctx, tx)
		if err != nil {
			return fmt.Errorf("failed to reserve booking id: %w", err)
		}

		booking.ID = id

		if err := p.bookingRepo.InsertTx(ctx, tx, booking); err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}

		customer := customerModel.Customer{BookingID: booking.ID, Name: booking.CustomerName}
		if err := p.customerRepo.InsertTx(ctx, tx, customer); err != nil {
			return fmt.Errorf("failed to insert customer: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, err
	}

	scope.SetAttribute("booking.id", booking.ID)

	return booking, nil
}

func (p *postgresStore) listBookings(ctx context.Context, filter gDto.FilterGroup) ([]bookingModel.Booking, error) {
	bookings, err := p.bookingRepo.GetAll(ctx, gDto.InsertionOrder(), filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return bookings, nil
}

func (p *postgresStore) ListBookings(ctx context.Context) ([]bookingModel.Booking, error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".postgres.ListBookings")
	defer scope.End()

	return p.listBookings(ctx, gDto.FilterGroup{})
}

func (p *postgresStore) ListBookingsForRoom(ctx context.Context, roomID int64) ([]bookingModel.Booking, error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".postgres.ListBookingsForRoom")
	defer scope.End()

	return p.listBookings(ctx, shared.FilterByFields(bookingModel.TableName, bookingModel.FieldRoomID, roomID))
}

func (p *postgresStore) ListBookingsForCustomer(ctx context.Context, name string) ([]bookingModel.Booking, error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".postgres.ListBookingsForCustomer")
	defer scope.End()

	return p.listBookings(ctx, shared.FilterByFields(bookingModel.TableName, bookingModel.FieldCustomerName, name))
}

func (p *postgresStore) ListCustomers(ctx context.Context) ([]customerModel.Customer, error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".postgres.ListCustomers")
	defer scope.End()

	params := gDto.QueryParams{SortBy: customerModel.FieldBookingID, SortDir: gDto.SortDirAsc}

	customers, err := p.customerRepo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	return customers, nil
}
