package namebright

import (
	"context"
	"errors"
	"iter"
)

const defaultIteratorPerPage = 20

// DomainPageLister fetches one page of the domain listing.
type DomainPageLister interface {
	List(ctx context.Context, page, perPage int) (*DomainsPage, error)
}

// DomainIterator walks every domain of the account one page at a time.
//
// Pages are requested lazily starting at 1, right before their first record is
// needed. The sequence ends after an empty page or after a page shorter than
// perPage; a full last page therefore costs one extra, empty fetch. An
// iterator cannot be restarted, and after an error it stays exhausted.
type DomainIterator struct {
	ctx     context.Context //nolint:containedctx // bound to the lifetime of one iteration
	lister  DomainPageLister
	perPage int

	page    int
	total   int
	current []Domain
	index   int
	done    bool
	err     error
}

// NewDomainIterator creates an iterator over lister. A non-positive perPage
// uses the default page size of 20.
func NewDomainIterator(ctx context.Context, lister DomainPageLister, perPage int) *DomainIterator {
	if perPage <= 0 {
		perPage = defaultIteratorPerPage
	}

	return &DomainIterator{
		ctx:     ctx,
		lister:  lister,
		perPage: perPage,
	}
}

// HasNext reports whether another domain is available, fetching the next page
// when the current one is used up.
func (it *DomainIterator) HasNext() bool {
	if it.index < len(it.current) {
		return true
	}

	if it.done {
		return false
	}

	it.fetchNextPage()

	return it.index < len(it.current)
}

// Next returns the next domain. It returns ErrNoMoreItems once the sequence
// is exhausted, or the error that ended it.
func (it *DomainIterator) Next() (Domain, error) {
	if !it.HasNext() {
		if it.err != nil {
			return Domain{}, it.err
		}

		return Domain{}, ErrNoMoreItems
	}

	domain := it.current[it.index]
	it.index++

	return domain, nil
}

// All drains the iterator into a slice.
func (it *DomainIterator) All() ([]Domain, error) {
	var all []Domain

	for {
		domain, err := it.Next()
		if errors.Is(err, ErrNoMoreItems) {
			return all, nil
		}

		if err != nil {
			return all, err
		}

		all = append(all, domain)
	}
}

// ForEach calls fn for every remaining domain and stops at the first error.
func (it *DomainIterator) ForEach(fn func(Domain) error) error {
	for it.HasNext() {
		domain, err := it.Next()
		if err != nil {
			return err
		}

		err = fn(domain)
		if err != nil {
			return err
		}
	}

	return it.err
}

// Seq adapts the iterator for range-over-func. A fetch error is yielded once
// with a zero Domain and ends the sequence.
//
//	for domain, err := range client.Domains().Iterate(ctx, 20).Seq() {
//		if err != nil {
//			return err
//		}
//		fmt.Println(domain.DomainName)
//	}
func (it *DomainIterator) Seq() iter.Seq2[Domain, error] {
	return func(yield func(Domain, error) bool) {
		for it.HasNext() {
			domain, err := it.Next()
			if !yield(domain, err) || err != nil {
				return
			}
		}

		if it.err != nil {
			yield(Domain{}, it.err)
		}
	}
}

// Err returns the error that ended the iteration, if any.
func (it *DomainIterator) Err() error {
	return it.err
}

// Page returns the number of the last fetched page, 0 before the first fetch.
func (it *DomainIterator) Page() int {
	return it.page
}

// ResultsTotal returns the total reported by the last fetched page.
func (it *DomainIterator) ResultsTotal() int {
	return it.total
}

func (it *DomainIterator) fetchNextPage() {
	page, err := it.lister.List(it.ctx, it.page+1, it.perPage)
	if err != nil {
		it.err = err
		it.done = true

		return
	}

	it.page++
	it.total = page.ResultsTotal
	it.current = page.Domains
	it.index = 0

	if len(page.Domains) < it.perPage {
		it.done = true
	}
}
