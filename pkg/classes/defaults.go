package classes

// Class keys for every sidebar element.
const (
	KeyRoot            = "root"
	KeyRootExpanded    = "rootExpanded"
	KeyRootCollapsed   = "rootCollapsed"
	KeyWrapper         = "wrapper"
	KeyNav             = "nav"
	KeyMenu            = "menu"
	KeyItem            = "item"
	KeyLink            = "link"
	KeyLinkActive      = "linkActive"
	KeyLinkHover       = "linkHover"
	KeyLinkFocus       = "linkFocus"
	KeyLinkDisabled    = "linkDisabled"
	KeyLinkOpen        = "linkOpen"
	KeyLinkGroupActive = "linkGroupActive"
	KeyIcon            = "icon"
	KeyLabel           = "label"
	KeyBadge           = "badge"
	KeyDropdown        = "dropdown"
	KeyDropdownOpen    = "dropdownOpen"
	KeyGroup           = "group"
	KeyGroupContent    = "groupContent"
	KeyHeader          = "header"
	KeyFooter          = "footer"
	KeyOverlay         = "overlay"
	KeyDrawer          = "drawer"
	KeyTooltip         = "tooltip"
	KeyToggle          = "toggle"
	KeyIndent          = "indent"
)

// Defaults are the built-in Tailwind utility classes.
var Defaults = Overrides{
	KeyRoot:            "flex flex-col h-full bg-gray-900 text-gray-100 transition-all duration-300 ease-in-out",
	KeyRootExpanded:    "w-64",
	KeyRootCollapsed:   "w-16",
	KeyWrapper:         "flex-1 overflow-y-auto overflow-x-hidden",
	KeyNav:             "h-full",
	KeyMenu:            "list-none p-0 m-0 space-y-1",
	KeyItem:            "relative",
	KeyLink:            "flex items-center gap-3 px-4 py-3 text-gray-300 rounded-lg mx-2 transition-colors duration-200",
	KeyLinkActive:      "bg-blue-600 text-white",
	KeyLinkHover:       "hover:bg-gray-800 hover:text-white",
	KeyLinkFocus:       "focus:outline-none focus-visible:ring-2 focus-visible:ring-blue-500 focus-visible:ring-offset-2 focus-visible:ring-offset-gray-900",
	KeyLinkDisabled:    "opacity-50 cursor-not-allowed",
	KeyLinkOpen:        "bg-gray-800",
	KeyLinkGroupActive: "text-blue-400",
	KeyIcon:            "w-5 h-5 flex-shrink-0",
	KeyLabel:           "flex-1 truncate",
	KeyBadge:           "ml-auto px-2 py-0.5 text-xs font-medium rounded-full bg-blue-500 text-white",
	KeyDropdown:        "ml-auto w-4 h-4 transition-transform duration-200",
	KeyDropdownOpen:    "rotate-180",
	KeyGroup:           "overflow-hidden",
	KeyGroupContent:    "pl-4",
	KeyHeader:          "",
	KeyFooter:          "mt-auto",
	KeyOverlay:         "fixed inset-0 bg-black bg-opacity-50 z-40",
	KeyDrawer:          "fixed inset-y-0 left-0 z-50 w-64 bg-gray-900 shadow-xl",
	KeyTooltip:         "absolute left-full ml-2 px-2 py-1 bg-gray-800 text-white text-sm rounded shadow-lg whitespace-nowrap z-50",
	KeyToggle:          "flex items-center justify-center p-2 text-gray-400 hover:text-white transition-colors",
	KeyIndent:          "pl-[calc(var(--level,0)*1rem)]",
}

// DefaultCSSVars are the custom properties set on the root element.
var DefaultCSSVars = map[string]string{
	"--sidebar-width":               "256px",
	"--sidebar-collapsed-width":     "64px",
	"--sidebar-transition-duration": "300ms",
	"--sidebar-indent-size":         "16px",
	"--sidebar-item-padding-x":      "16px",
	"--sidebar-item-padding-y":      "10px",
	"--sidebar-icon-size":           "20px",
}
