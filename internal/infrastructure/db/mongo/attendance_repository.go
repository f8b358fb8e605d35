package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/staffroom/attendance-system/internal/core/domain"
)

const attendanceCollection = "attendance"

// AttendanceRepository persists daily attendance records in MongoDB. The
// unique (employee, date) index surfaces racing same-day creates as
// domain.ErrDuplicateAttendance.
type AttendanceRepository struct {
	coll *mongo.Collection
}

func NewAttendanceRepository(db *mongo.Database) *AttendanceRepository {
	return &AttendanceRepository{coll: db.Collection(attendanceCollection)}
}

type attendanceDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Employee   primitive.ObjectID `bson:"employee"`
	Team       primitive.ObjectID `bson:"team"`
	Date       time.Time          `bson:"date"`
	Status     string             `bson:"status"`
	Type       string             `bson:"attendanceType"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

func (d *attendanceDoc) toDomain() *domain.Attendance {
	return &domain.Attendance{
		ID:         d.ID.Hex(),
		EmployeeID: d.Employee.Hex(),
		TeamID:     d.Team.Hex(),
		Date:       d.Date,
		Status:     domain.AttendanceStatus(d.Status),
		Type:       domain.AttendanceType(d.Type),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func (r *AttendanceRepository) Create(ctx context.Context, a *domain.Attendance) (*domain.Attendance, error) {
	eoid, err := primitive.ObjectIDFromHex(a.EmployeeID)
	if err != nil {
		return nil, domain.ErrEmployeeNotFound
	}
	toid, err := primitive.ObjectIDFromHex(a.TeamID)
	if err != nil {
		return nil, domain.ErrTeamNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := attendanceDoc{
		Employee:  eoid,
		Team:      toid,
		Date:      a.Date,
		Status:    string(a.Status),
		Type:      string(a.Type),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateAttendance
		}
		return nil, fmt.Errorf("insert attendance: %w", err)
	}

	created := *a
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *AttendanceRepository) FindByID(ctx context.Context, id string) (*domain.Attendance, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAttendanceNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *AttendanceRepository) FindOne(ctx context.Context, employeeID, teamID string, date time.Time) (*domain.Attendance, error) {
	eoid, err := primitive.ObjectIDFromHex(employeeID)
	if err != nil {
		return nil, domain.ErrAttendanceNotFound
	}
	toid, err := primitive.ObjectIDFromHex(teamID)
	if err != nil {
		return nil, domain.ErrAttendanceNotFound
	}
	return r.findOne(ctx, bson.M{"employee": eoid, "team": toid, "date": date})
}

func (r *AttendanceRepository) FindByEmployee(ctx context.Context, employeeID string) ([]domain.Attendance, error) {
	oid, err := primitive.ObjectIDFromHex(employeeID)
	if err != nil {
		return nil, domain.ErrEmployeeNotFound
	}
	return r.findMany(ctx, bson.M{"employee": oid})
}

func (r *AttendanceRepository) FindByTeam(ctx context.Context, teamID string) ([]domain.Attendance, error) {
	oid, err := primitive.ObjectIDFromHex(teamID)
	if err != nil {
		return nil, domain.ErrTeamNotFound
	}
	return r.findMany(ctx, bson.M{"team": oid})
}

func (r *AttendanceRepository) FindAll(ctx context.Context) ([]domain.Attendance, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *AttendanceRepository) FindByEmployeeInWindow(ctx context.Context, employeeID string, start, end time.Time) (*domain.Attendance, error) {
	oid, err := primitive.ObjectIDFromHex(employeeID)
	if err != nil {
		return nil, domain.ErrAttendanceNotFound
	}
	return r.findOne(ctx, bson.M{
		"employee": oid,
		"date":     bson.M{"$gte": start, "$lte": end},
	})
}

func (r *AttendanceRepository) Update(ctx context.Context, a *domain.Attendance) error {
	oid, err := primitive.ObjectIDFromHex(a.ID)
	if err != nil {
		return domain.ErrAttendanceNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"status":         string(a.Status),
		"attendanceType": string(a.Type),
		"updatedAt":      a.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update attendance: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAttendanceNotFound
	}
	return nil
}

func (r *AttendanceRepository) DeleteByEmployeeInWindow(ctx context.Context, employeeID string, start, end time.Time) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(employeeID)
	if err != nil {
		return 0, domain.ErrEmployeeNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{
		"employee": oid,
		"date":     bson.M{"$gte": start, "$lte": end},
	})
	if err != nil {
		return 0, fmt.Errorf("delete attendance: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *AttendanceRepository) findOne(ctx context.Context, filter bson.M) (*domain.Attendance, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc attendanceDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("find attendance: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AttendanceRepository) findMany(ctx context.Context, filter bson.M) ([]domain.Attendance, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Attendance
	for cur.Next(ctx) {
		var doc attendanceDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode attendance: %w", err)
		}
		out = append(out, *doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendance: %w", err)
	}
	return out, nil
}
