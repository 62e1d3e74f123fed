package emx

import (
	"encoding/binary"
	"fmt"
)

// The wire size in bytes of every fixed descriptor. The Go structs must
// decode to exactly these sizes; a mismatch means the struct no longer
// matches the format and nothing sane can be decoded.
var descriptor_sizes = []struct {
	name string
	size int
	blob interface{}
}{
	{"header", HEADER_SIZE, Header{}},
	{"depth.info", 12, DepthInfo{}},
	{"depth.beam", 16, DepthBeam{}},
	{"xyz.info", 20, XyzInfo{}},
	{"xyz.beam", 20, XyzBeam{}},
	{"depth_nominal.info", 8, DepthNominalInfo{}},
	{"depth_nominal.beam", 14, DepthNominalBeam{}},
	{"extra_detect.info", 36, ExtraDetectInfo{}},
	{"extra_detect.class", 16, ExtraDetectClass{}},
	{"extra_detect.data", 68, ExtraDetectData{}},
	{"central_beams.info", 16, CentralBeamsInfo{}},
	{"central_beams.data", 6, CentralBeamsData{}},
	{"rra_70.info", 4, Rra70Info{}},
	{"rra_70.beam", 8, Rra70Beam{}},
	{"rra_78.info", 16, Rra78Info{}},
	{"rra_78.tx", 24, Rra78Tx{}},
	{"rra_78.rx", 16, Rra78Rx{}},
	{"rra_101.info", 30, Rra101Info{}},
	{"rra_101.tx", 12, Rra101Tx{}},
	{"rra_101.rx", 16, Rra101Rx{}},
	{"rra_102.info", 20, Rra102Info{}},
	{"rra_102.tx", 20, Rra102Tx{}},
	{"rra_102.rx", 12, Rra102Rx{}},
	{"seabed_83.info", 16, Seabed83Info{}},
	{"seabed_83.beam", 6, Seabed83Beam{}},
	{"seabed_89.info", 16, Seabed89Info{}},
	{"seabed_89.beam", 6, Seabed89Beam{}},
	{"wc.info", 24, WcInfo{}},
	{"wc.tx", 6, WcTx{}},
	{"wc.rx_info", 10, WcRxInfo{}},
	{"qf.info", 4, QfInfo{}},
	{"attitude.info", 2, AttitudeInfo{}},
	{"attitude.data", 12, AttitudeData{}},
	{"attitude_net.info", 4, NetAttitudeInfo{}},
	{"attitude_net.data_info", 11, NetAttitudeDataInfo{}},
	{"clock.info", 9, ClockInfo{}},
	{"height.info", 5, HeightInfo{}},
	{"heading.info", 2, HeadingInfo{}},
	{"heading.data", 4, HeadingData{}},
	{"position.info", 18, PositionInfo{}},
	{"sb_depth.info", 13, SingleBeamDepthInfo{}},
	{"tide.info", 11, TideInfo{}},
	{"sssv.info", 2, SssvInfo{}},
	{"sssv.data", 4, SssvData{}},
	{"svp.info", 12, SvpInfo{}},
	{"svp.data", 8, SvpData{}},
	{"svp_em3000.data", 4, SvpEm3000Data{}},
	{"install_params.info", 2, InstallParamsInfo{}},
	{"runtime_params.info", 33, RuntimeParamsInfo{}},
	{"extra_params.info", 2, ExtraParamsInfo{}},
	{"pu_output.info", 88, PuOutputInfo{}},
	{"pu_status.info", 69, PuStatusInfo{}},
	{"pu_bist.info", 4, PuBistInfo{}},
	{"tilt.info", 2, TiltInfo{}},
	{"tilt.data", 4, TiltData{}},
	{"hisas_status.info", 100, HisasStatusInfo{}},
	{"sidescan_status.info", 1025, SidescanStatusInfo{}},
	{"sidescan_status.channel", 128, SidescanStatusChannel{}},
	{"sidescan_data.info", 256, SidescanDataInfo{}},
	{"sidescan_data.channel", 64, SidescanDataChannel{}},
	{"navigation_output.info", 112, NavigationOutputInfo{}},
}

// The descriptor structs decode sequentially with encoding/binary, so their
// wire size is binary.Size, independent of any in-memory padding. Checked
// once at startup; a failure is a programming error, not a data error.
func init() {
	for _, d := range descriptor_sizes {
		if sz := binary.Size(d.blob); sz != d.size {
			panic(fmt.Sprintf("emx: descriptor %s is %d bytes; format mandates %d",
				d.name, sz, d.size))
		}
	}
}
