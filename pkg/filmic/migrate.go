package filmic

// MigrateV1ToV2 upgrades a v1 (pre-reconstruction) parameter record to
// v2, per §4.9. It copies the 13 fields the two versions share and
// fills the new reconstruction fields with defaults chosen so the
// migrated edit behaves exactly as it did under v1.
//
// reconstruct_threshold is set to 3 EV above white on purpose: this
// keeps the threshold far enough above any real pixel that the
// wavelet stage is a no-op on old edits, rather than retroactively
// reconstructing highlights an earlier version of this engine never
// touched.
func MigrateV1ToV2(old Params) Params {
	p := old

	p.ReconstructThreshold = 3.0
	p.ReconstructFeather = 3.0
	p.ReconstructBloomVsDetails = 0.0
	p.ReconstructGreyVsColor = 0.0
	p.ReconstructStructureVsTexture = 0.0
	p.HighQualityReconstruction = false

	p.Shadows = CurvePoly4
	p.Highlights = CurvePoly3
	p.Version = VersionV1
	p.AutoHardness = true
	p.CustomGrey = true

	return p
}
