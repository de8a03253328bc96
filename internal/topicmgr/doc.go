// Package topicmgr keeps a catalog of documented event topics: who publishes
// them, what payload they carry and an example. The dispatcher accepts any
// topic string; the catalog exists for discovery and validation.
//
// Core topics are published by the runtime and live under reserved prefixes
// (gpu., dispatcher., lifecycle.). App topics belong to an owning component:
//
//	var FrameDone = topicmgr.DefineApp(topicmgr.TopicConfig{
//		Name:        "render.frame.done",
//		Owner:       "render",
//		Description: "Published after a frame has been submitted",
//		Example:     `{"index":42}`,
//	})
//
//	manager := topicmgr.NewManager()
//	if err := manager.Register(FrameDone); err != nil {
//		log.Fatal(err)
//	}
//
// Catalogs can also be loaded from JSON files through an afero.Fs:
//
//	n, err := manager.LoadCatalog(afero.NewOsFs(), "topics.json")
package topicmgr
