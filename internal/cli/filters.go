package cli

import (
	"github.com/spf13/pflag"

	"github.com/idilsaglam/lostboard/internal/view"
)

type filterFlags struct {
	kind   string
	status string
	search string
}

func (f *filterFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.kind, "type", "all", "Item type: all|lost|found")
	fs.StringVar(&f.status, "status", "all", "Item status: all|active|done")
	fs.StringVar(&f.search, "search", "", "Case-insensitive text matched against title and location")
}

func (f filterFlags) criteria() (view.Criteria, error) {
	k, err := view.ParseKindFilter(f.kind)
	if err != nil {
		return view.Criteria{}, usageError{err: err}
	}
	s, err := view.ParseStatusFilter(f.status)
	if err != nil {
		return view.Criteria{}, usageError{err: err}
	}
	return view.Criteria{Kind: k, Status: s, Search: f.search}, nil
}
