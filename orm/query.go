package orm

import (
	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/errors"
)

// ConsumeIterator will read all remaining data into an
// array and close the iterator
func ConsumeIterator(itr swapd.Iterator) []swapd.Model {
	defer itr.Close()

	res := []swapd.Model{}
	for ; itr.Valid(); itr.Next() {
		res = append(res, swapd.Pair(itr.Key(), itr.Value()))
	}
	return res
}

func queryPrefix(db swapd.ReadOnlyKVStore, prefix []byte) ([]swapd.Model, error) {
	itr, err := db.Iterator(prefix, prefixRangeEnd(prefix))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return ConsumeIterator(itr), nil
}

// prefixRangeEnd returns the smallest key greater than every key
// starting with prefix, or nil if there is none.
func prefixRangeEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

// RegisterQuery exposes the raw store under "/". Clients using it
// apply the bucket prefixes themselves.
func RegisterQuery(qr swapd.QueryRouter) {
	qr.Register("/", rawQuery{})
}

type rawQuery struct{}

var _ swapd.QueryHandler = rawQuery{}

func (rawQuery) Query(db swapd.ReadOnlyKVStore, mod string, data []byte) ([]swapd.Model, error) {
	switch mod {
	case swapd.KeyQueryMod:
		value, err := db.Get(data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
		if value == nil {
			return nil, nil
		}
		return []swapd.Model{swapd.Pair(data, value)}, nil
	case swapd.PrefixQueryMod:
		return queryPrefix(db, data)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}
