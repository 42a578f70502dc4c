package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/thankimquy/FOODORDER/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// EntityStore persists the food and order collections in MongoDB. ReplaceAll
// runs inside a session transaction so readers never observe a half-replaced
// store.
type EntityStore struct {
	storage *Storage
	foods   *mongo.Collection
	orders  *mongo.Collection
}

func NewEntityStore(storage *Storage) *EntityStore {
	return &EntityStore{
		storage: storage,
		foods:   storage.Database().Collection("foods"),
		orders:  storage.Database().Collection("orders"),
	}
}

func (s *EntityStore) Foods(ctx context.Context) ([]domain.FoodItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := s.foods.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}
	defer cursor.Close(ctx)

	foods := []domain.FoodItem{}
	if err := cursor.All(ctx, &foods); err != nil {
		return nil, fmt.Errorf("failed to decode foods: %w", err)
	}

	return foods, nil
}

func (s *EntityStore) GetFood(ctx context.Context, id string) (domain.FoodItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var food domain.FoodItem
	err := s.foods.FindOne(ctx, bson.M{"_id": id}).Decode(&food)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.FoodItem{}, fmt.Errorf("food %s: %w", id, domain.ErrNotFound)
		}
		return domain.FoodItem{}, fmt.Errorf("failed to get food: %w", err)
	}

	return food, nil
}

func (s *EntityStore) InsertFood(ctx context.Context, food domain.FoodItem) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := s.foods.InsertOne(ctx, food); err != nil {
		return fmt.Errorf("failed to insert food: %w", err)
	}

	return nil
}

func (s *EntityStore) DeleteFood(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// absent id is a no-op, deletes are idempotent
	if _, err := s.foods.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete food: %w", err)
	}

	return nil
}

func (s *EntityStore) CountFoods(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := s.foods.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count foods: %w", err)
	}

	return count, nil
}

func (s *EntityStore) Orders(ctx context.Context) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := s.orders.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []domain.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	return orders, nil
}

func (s *EntityStore) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var order domain.Order
	err := s.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Order{}, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
		}
		return domain.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	return order, nil
}

func (s *EntityStore) InsertOrder(ctx context.Context, order domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := s.orders.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	return nil
}

func (s *EntityStore) UpdateOrder(ctx context.Context, order domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := s.orders.ReplaceOne(ctx, bson.M{"_id": order.ID}, order)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("order %s: %w", order.ID, domain.ErrNotFound)
	}

	return nil
}

func (s *EntityStore) DeleteOrder(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := s.orders.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	return nil
}

func (s *EntityStore) ReplaceAll(ctx context.Context, foods []domain.FoodItem, orders []domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	session, err := s.storage.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	err = mongo.WithSession(ctx, session, func(sc mongo.SessionContext) error {
		if err := session.StartTransaction(); err != nil {
			return fmt.Errorf("failed to start transaction: %w", err)
		}

		if _, err := s.foods.DeleteMany(sc, bson.M{}); err != nil {
			session.AbortTransaction(sc)
			return fmt.Errorf("failed to clear foods: %w", err)
		}
		if _, err := s.orders.DeleteMany(sc, bson.M{}); err != nil {
			session.AbortTransaction(sc)
			return fmt.Errorf("failed to clear orders: %w", err)
		}

		if len(foods) > 0 {
			docs := make([]interface{}, len(foods))
			for i, f := range foods {
				docs[i] = f
			}
			if _, err := s.foods.InsertMany(sc, docs); err != nil {
				session.AbortTransaction(sc)
				return fmt.Errorf("failed to insert foods: %w", err)
			}
		}
		if len(orders) > 0 {
			docs := make([]interface{}, len(orders))
			for i, o := range orders {
				docs[i] = o
			}
			if _, err := s.orders.InsertMany(sc, docs); err != nil {
				session.AbortTransaction(sc)
				return fmt.Errorf("failed to insert orders: %w", err)
			}
		}

		if err := session.CommitTransaction(sc); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	return nil
}
