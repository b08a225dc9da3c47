// Package ambient is an adaptive particle engine for ambient animated
// backgrounds.
//
// An [Engine] owns one drawable [Surface] and a bounded buffer of
// [Particle] records. Once per frame, driven by a [FrameClock], it spawns at
// most one particle, integrates every particle by the elapsed time, wraps
// positions around the surface edges and redraws the surface.
//
// # Quick start
//
//	cfg := ambient.DefaultConfig()
//	cfg.Color, _ = ambient.ParseColor("#7dd3fc")
//
//	e := ambient.NewEngine(cfg)
//	if err := e.Init(surface, ambient.Signals{Tier: ambient.TierMedium}); err != nil {
//		// the engine is degraded; nothing will animate
//	}
//	e.Start()
//	defer e.Dispose()
//
// Surfaces are provided by sub-packages: ggsurface renders headless with
// [gogpu/gg], ebitenhost draws into an [Ebitengine] window and termsurface
// draws into a [tcell] terminal screen.
//
// # Performance tiers
//
// The configuration is scaled once at [Engine.Init] by the tier multipliers
// (high 1.0, medium 0.7, low 0.4). The tier comes from
// [Config.PerformanceMode], or, in auto mode, from [Signals.Tier] or the
// engine's [Classifier].
//
// # Lifecycle
//
// The frame scheduler moves Idle -> Running -> Stopped. Stopped is terminal;
// create a new engine to animate again. Losing the surface stops the engine
// and marks it degraded rather than returning an error to the host's frame
// loop. With [Signals.ReducedMotion] set, Init draws one inert frame and the
// engine never animates.
//
// [gogpu/gg]: https://github.com/gogpu/gg
// [Ebitengine]: https://ebitengine.org
// [tcell]: https://github.com/gdamore/tcell
package ambient
