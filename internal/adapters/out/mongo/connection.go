// Package mongo holds the document store plumbing shared by the order and driver
// repositories, such as connecting and mapping driver errors.
package mongo

import (
	"context"
	"errors"

	"fulfillment/internal/pkg/errs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Resource names the document store in connectivity errors.
const Resource = "document store"

// Connect opens a client for uri and checks the primary answers. The caller owns the
// client and releases it with Disconnect.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errs.NewConnectivityErrorWithCause(Resource, err)
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errs.NewConnectivityErrorWithCause(Resource, err)
	}

	return client, nil
}

// Disconnect closes a client returned by Connect.
func Disconnect(ctx context.Context, client *mongo.Client) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

// Classify maps a driver error to the core error taxonomy: duplicate keys become
// errs.ErrDuplicateWrite for key, a stored document that does not decode into its
// Go type becomes errs.ErrValueIsInvalid, anything else errs.ErrConnectivity.
func Classify(key any, err error) error {
	if err == nil {
		return nil
	}

	if mongo.IsDuplicateKeyError(err) {
		return errs.NewDuplicateWriteErrorWithCause(Resource, key, err)
	}

	if IsDecodeError(err) {
		return errs.NewValueIsInvalidErrorWithCause(Resource+" document", err)
	}

	return errs.NewConnectivityErrorWithCause(Resource, err)
}

// IsDecodeError reports whether err comes from decoding BSON into a Go value.
func IsDecodeError(err error) bool {
	var (
		decodeErr      *bsoncodec.DecodeError
		valueDecodeErr bsoncodec.ValueDecoderError
	)

	return errors.As(err, &decodeErr) ||
		errors.As(err, &valueDecodeErr) ||
		errors.Is(err, bson.ErrDecodeToNil)
}
