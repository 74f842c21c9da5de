/*
Package redisstore provides a tree.Store backed by a redis database.
*/
package redisstore

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ariaghora/libdtree/tree"
	"gopkg.in/redis.v5"
)

/*
Codec is an interface for objects that allow encoding trees into
slices of bytes and decoding them back to trees.
*/
type Codec interface {

	//Encode receives a *tree.Tree
	//and returns a slice of bytes with the tree
	//encoded or an error if the encoding could not
	//be performed for some reason.
	Encode(*tree.Tree) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a *tree.Tree decoded from the
	//slice of bytes or an error if the decoding
	//could not be performed for some reason.
	Decode([]byte) (*tree.Tree, error)
}

type redisStore struct {
	rc     *redis.Client
	prefix string
	codec  Codec
}

// New builds a tree.Store backed by a redis DB. A tree saved under a
// name is kept at the key prefix:name, encoded with the given codec.
// Closing the store closes the redis client.
func New(rc *redis.Client, prefix string, codec Codec) tree.Store {
	return &redisStore{rc, prefix, codec}
}

func (rs *redisStore) Save(ctx context.Context, name string, t *tree.Tree) error {
	data, err := rs.codec.Encode(t)
	if err != nil {
		return fmt.Errorf("saving tree %q: encoding tree: %v", name, err)
	}
	_, err = rs.rc.Set(rs.keyFor(name), data, 0).Result()
	if err != nil {
		return fmt.Errorf("saving tree %q in redis: %v", name, err)
	}
	return nil
}

func (rs *redisStore) Load(ctx context.Context, name string) (*tree.Tree, error) {
	data, err := rs.rc.Get(rs.keyFor(name)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading tree %q from redis: %v", name, err)
	}
	t, err := rs.codec.Decode([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("loading tree %q: decoding %q: %v", name, data, err)
	}
	return t, nil
}

func (rs *redisStore) List(ctx context.Context) ([]string, error) {
	keys, err := rs.rc.Keys(rs.keyFor("*")).Result()
	if err != nil {
		return nil, fmt.Errorf("listing trees in redis: %v", err)
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, strings.TrimPrefix(k, rs.prefix+":"))
	}
	sort.Strings(names)
	return names, nil
}

func (rs *redisStore) Delete(ctx context.Context, name string) error {
	_, err := rs.rc.Del(rs.keyFor(name)).Result()
	if err != nil {
		return fmt.Errorf("deleting tree %q from redis: %v", name, err)
	}
	return nil
}

func (rs *redisStore) Close(ctx context.Context) error {
	return rs.rc.Close()
}

func (rs *redisStore) keyFor(name string) string {
	return fmt.Sprintf("%s:%s", rs.prefix, name)
}
