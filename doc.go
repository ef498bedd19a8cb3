// Package blogdex indexes a blog's article collection by tag.
//
// A Client loads the collection once from a source (an in-memory list, a
// YAML/JSON file, the built-in dataset, SQLite, Redis or Valkey) and then
// answers lookups from an immutable in-memory index:
//
//	c, err := blogdex.New(ctx, blogdex.WithFile("articles.yaml"))
//	if err != nil {
//		return err
//	}
//	defer c.Close()
//
//	tags := c.Tags()
//	related := c.Related(7, 3)
package blogdex
