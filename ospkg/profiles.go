package ospkg

// A Profile ties a package manager to the native libraries devsetup installs
// with it. Command doubles as the detection probe: a manager is considered
// present when its binary is on the executable search path. Args is the
// non-interactive install invocation, Packages the manager's spelling of the
// dependency set (audio, font, display server, TLS, compression and the
// Vulkan loader).
type Profile struct {
	Command  string
	Args     []string
	Packages []string
}

// Profiles are probed in this order and the first command found on the
// search path wins, even when several managers are installed. Adding a
// distribution is a new entry here, not new control flow. Keep the package
// lists in sync: same libraries, per-manager names.
var profiles = []Profile{
	{
		Command: "apt-get",
		Args:    []string{"install", "-y"},
		Packages: []string{
			"libasound2-dev",
			"libfontconfig-dev",
			"libwayland-dev",
			"libxkbcommon-x11-dev",
			"libssl-dev",
			"libzstd-dev",
			"libvulkan1",
		},
	},
	{
		Command: "dnf",
		Args:    []string{"install", "-y"},
		Packages: []string{
			"alsa-lib-devel",
			"fontconfig-devel",
			"wayland-devel",
			"libxkbcommon-x11-devel",
			"openssl-devel",
			"libzstd-devel",
			"vulkan-loader",
		},
	},
	{
		Command: "zypper",
		Args:    []string{"install", "-y"},
		Packages: []string{
			"alsa-devel",
			"fontconfig-devel",
			"wayland-devel",
			"libxkbcommon-x11-devel",
			"libopenssl-devel",
			"libzstd-devel",
			"libvulkan1",
		},
	},
	{
		Command: "pacman",
		Args:    []string{"-S", "--noconfirm"},
		Packages: []string{
			"alsa-lib",
			"fontconfig",
			"wayland",
			"libxkbcommon-x11",
			"openssl",
			"zstd",
			"vulkan-icd-loader",
		},
	},
	{
		Command: "xbps-install",
		Args:    []string{"-Sy"},
		Packages: []string{
			"alsa-lib-devel",
			"fontconfig-devel",
			"wayland-devel",
			"libxkbcommon-devel",
			"openssl-devel",
			"libzstd-devel",
			"vulkan-loader",
		},
	},
}

// Profiles returns the known profiles in probe order.
func Profiles() []Profile { return profiles }
