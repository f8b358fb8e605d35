package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/staffroom/attendance-system/internal/core/domain"
)

const teamCollection = "teams"

// TeamRepository persists teams in MongoDB. Reads preserve natural storage
// order, which the first-match team resolution relies on.
type TeamRepository struct {
	coll *mongo.Collection
}

func NewTeamRepository(db *mongo.Database) *TeamRepository {
	return &TeamRepository{coll: db.Collection(teamCollection)}
}

type teamDoc struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty"`
	Name       string               `bson:"name"`
	Department string               `bson:"department"`
	Manager    *primitive.ObjectID  `bson:"manager,omitempty"`
	Members    []primitive.ObjectID `bson:"members"`
}

func (d *teamDoc) toDomain() *domain.Team {
	t := &domain.Team{
		ID:         d.ID.Hex(),
		Name:       d.Name,
		Department: d.Department,
		MemberIDs:  make([]string, 0, len(d.Members)),
	}
	if d.Manager != nil {
		t.ManagerID = d.Manager.Hex()
	}
	for _, m := range d.Members {
		t.MemberIDs = append(t.MemberIDs, m.Hex())
	}
	return t
}

func (r *TeamRepository) Create(ctx context.Context, t *domain.Team) (*domain.Team, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := teamDoc{
		Name:       t.Name,
		Department: t.Department,
		Members:    []primitive.ObjectID{},
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert team: %w", err)
	}

	created := *t
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *TeamRepository) FindByID(ctx context.Context, id string) (*domain.Team, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTeamNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *TeamRepository) FindByName(ctx context.Context, name string) (*domain.Team, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *TeamRepository) FindByNameAndDepartment(ctx context.Context, name, department string) (*domain.Team, error) {
	return r.findOne(ctx, bson.M{"name": name, "department": department})
}

func (r *TeamRepository) FindAll(ctx context.Context) ([]domain.Team, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Team
	for cur.Next(ctx) {
		var doc teamDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode team: %w", err)
		}
		out = append(out, *doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate teams: %w", err)
	}
	return out, nil
}

func (r *TeamRepository) AddMember(ctx context.Context, teamID, employeeID string) (*domain.Team, error) {
	toid, err := primitive.ObjectIDFromHex(teamID)
	if err != nil {
		return nil, domain.ErrTeamNotFound
	}
	eoid, err := primitive.ObjectIDFromHex(employeeID)
	if err != nil {
		return nil, domain.ErrEmployeeNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc teamDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": toid},
		bson.M{"$addToSet": bson.M{"members": eoid}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, fmt.Errorf("add team member: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TeamRepository) SetManager(ctx context.Context, teamID, managerID string) (*domain.Team, error) {
	toid, err := primitive.ObjectIDFromHex(teamID)
	if err != nil {
		return nil, domain.ErrTeamNotFound
	}
	moid, err := primitive.ObjectIDFromHex(managerID)
	if err != nil {
		return nil, domain.ErrEmployeeNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc teamDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": toid},
		bson.M{"$set": bson.M{"manager": moid}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, fmt.Errorf("set team manager: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TeamRepository) DeleteByName(ctx context.Context, name string) (*domain.Team, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc teamDoc
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"name": name}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, fmt.Errorf("delete team: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TeamRepository) findOne(ctx context.Context, filter bson.M) (*domain.Team, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc teamDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, fmt.Errorf("find team: %w", err)
	}
	return doc.toDomain(), nil
}
