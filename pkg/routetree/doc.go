// Package routetree discovers file-based API routes and builds a route tree.
//
// A directory is an endpoint when it contains a marker file (route.ts by
// default). The tree mirrors the directory hierarchy below the scan root and
// keeps only directories that are endpoints or lead to one:
//
//	src/app/api/
//	├── users/
//	│   ├── route.ts        → /api/users
//	│   └── [id]/
//	│       └── route.ts    → /api/users/[id]
//	├── health/
//	│   └── route.ts        → /api/health
//	└── internal/           (no marker anywhere below, pruned)
//	    └── helpers/
//
// # Usage
//
//	b := routetree.NewBuilder(
//	    routetree.WithMarkers("route.ts", "route.js"),
//	)
//	tree, stats, err := b.Build(ctx, "src/app/api")
//	if err != nil {
//	    // errors.Is(err, routetree.ErrDirectoryUnreadable)
//	}
//
//	for _, p := range tree.Endpoints() {
//	    fmt.Println(p)
//	}
//
// The scan is depth-first and sequential. Children keep the order returned by
// os.ReadDir, so two scans of an unchanged directory produce equal trees.
package routetree
