package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/meikuraledutech/graphnav"
	"github.com/meikuraledutech/graphnav/sqlite"
)

func main() {
	ctx := context.Background()

	store, err := sqlite.Open(ctx, ":memory:")
	if err != nil {
		log.Fatalf("open: %v", err)
	}
	defer store.Close()

	// 1. Create tables
	if err := store.CreateSchema(ctx); err != nil {
		log.Fatalf("schema: %v", err)
	}
	fmt.Println("schema created")

	// ── Bulk insert using refs ────────────────────────────────────────
	// api -> auth -> db, api -> cache -> db, and a billing <-> ledger cycle.
	g := &graphnav.Graph{
		Nodes: []graphnav.Node{
			{Ref: "api", Name: "api"},
			{Ref: "auth", Name: "auth"},
			{Ref: "cache", Name: "cache"},
			{Ref: "db", Name: "db"},
			{Ref: "billing", Name: "billing"},
			{Ref: "ledger", Name: "ledger"},
			{Ref: "docs", Name: "docs"},
		},
		Edges: []graphnav.Edge{
			{SourceRef: "api", TargetRef: "auth"},
			{SourceRef: "api", TargetRef: "cache"},
			{SourceRef: "auth", TargetRef: "db"},
			{SourceRef: "cache", TargetRef: "db"},
			{SourceRef: "api", TargetRef: "billing"},
			{SourceRef: "billing", TargetRef: "ledger"},
			{SourceRef: "ledger", TargetRef: "billing"},
		},
	}
	created, err := store.CreateGraph(ctx, g)
	if err != nil {
		log.Fatalf("create graph: %v", err)
	}
	fmt.Println("graph created (bulk with refs)")
	printJSON(created)

	// ── Granular: add a node and an edge to it ────────────────────────
	queueID, err := store.AddNode(ctx, &graphnav.Node{Name: "queue"})
	if err != nil {
		log.Fatalf("add node: %v", err)
	}
	if _, err := store.AddEdge(ctx, &graphnav.Edge{SourceID: created.Nodes[5].ID, TargetID: queueID}); err != nil {
		log.Fatalf("add edge: %v", err)
	}
	fmt.Printf("\nadded node %d behind ledger\n", queueID)

	// ── Reachability, both ways ───────────────────────────────────────
	engine := graphnav.NewEngine(store)
	api, err := store.GetNodeByName(ctx, "api")
	if err != nil || api == nil {
		log.Fatalf("lookup api: %v", err)
	}

	cte, err := engine.ReachableViaQuery(ctx, api.ID)
	if err != nil {
		log.Fatalf("cte: %v", err)
	}
	fmt.Println("\nreachable from api (recursive query):")
	printJSON(cte)

	cmp, err := engine.Compare(ctx, api.ID)
	if err != nil {
		log.Fatalf("compare: %v", err)
	}
	fmt.Printf("depth-first search agrees: %v\n", cmp.Equivalent)

	// ── Render ────────────────────────────────────────────────────────
	out, err := engine.RenderGraph(ctx)
	if err != nil {
		log.Fatalf("render: %v", err)
	}
	fmt.Println()
	fmt.Print(out)

	// ── Cleanup ───────────────────────────────────────────────────────
	if err := store.DeleteNode(ctx, api.ID); err != nil {
		log.Fatalf("delete: %v", err)
	}
	fmt.Println("\napi deleted, its edges went with it")
}

func printJSON(v any) {
	out, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(out))
}
