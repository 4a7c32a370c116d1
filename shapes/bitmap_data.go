package shapes

// earthBitmap is a 120×60 equirectangular land mask, longitude -180..180 left
// to right and latitude 90..-90 top to bottom. '#' is land.
var earthBitmap = []string{
	"                                                                                                                        ",
	"                                                                                                                        ",
	"                                                                                                                        ",
	"                             # ####### #################                                    #                           ",
	"                       #    #   ### #################            ###                                                    ",
	"                      ###  ## ####       ############ #                        ##         ########        #####         ",
	"                  ## ###   #  ### ##      ###########                         #    #### ################   ###          ",
	"      ######## ###### #### # #  #  ###     #########              #######        # ## ##################################",
	" ### ###########################    ####   #####      #          ####### ###############################################",
	"      ########################       ##    ####                #### ####################################################",
	"      ### # #################      ##        #                ##### # ##########################################  ##    ",
	"                ##############     #####                   #     #  #######################################      ##     ",
	"                 ################ #######                # #   ###########################################      ##      ",
	"                  ########################                 ################################################             ",
	"                    ###################  ##                ################################################             ",
	"                   ################### #                    ##########  ####  ############################              ",
	"                   ##################                    ##### ##  ###    ### ##########################                ",
	"                   #################                     ###       # ######## ######################  #    #            ",
	"                    ###############                       #  ###       ##############################  #  #             ",
	"                     #############                        ######        #############################                   ",
	"                       ######## #                        ############################################                   ",
	"                      # ####     #                      ##################### #######################                   ",
	"                       # ###      #                    ################# ######    #################                    ",
	"                         ###  #   #                    ################## ######     ####  #####                        ",
	"                          #####   # #                  ################## #####      ###    ####                        ",
	"                             ####                      ################### ###       ##      ####   #                   ",
	"                               #    #                  ####################           #      # ##                       ",
	"                                #  #####                #####################         #      # #     ##                 ",
	"                                   ######                #### ###############          #      #    #                    ",
	"                                   ########                     ############                 ##   ##                    ",
	"                                  #########                     ###########                   #  ####                   ",
	"                                  #############                 ##########                    ##### #     ##            ",
	"                                 ################                ########                                  ## #         ",
	"                                  ###############                #########                         ## #    # #          ",
	"                                   #############                 #########                                              ",
	"                                   ############                  #########  #                         # ##  #           ",
	"                                     ##########                 #########  ##                        ########           ",
	"                                     ##########                  #######   ##                      ###########     #    ",
	"                                     ########                    #######   #                      #############         ",
	"                                     #######                     ######                           ##############        ",
	"                                     #######                      #####                            #############        ",
	"                                     ######                       ####                             ###   ######         ",
	"                                    #####                                                                  ####       # ",
	"                                    #####                                                                              #",
	"                                    ###                                                                      #        # ",
	"                                    ###                                                                             ##  ",
	"                                    ##                                                                                  ",
	"                                   ##                                                                                   ",
	"                                    ##                                                                                  ",
	"                                                                                                                        ",
	"                                                                                                                        ",
	"                                                                                                                        ",
	"                                       #                                                                                ",
	"                                      #                                #  ##########   ########################         ",
	"                                   #####                 ########################## #################################   ",
	"                  # ## #   #############              #############################################################     ",
	"        ## #########################             ##################################################################     ",
	"           ######################## #  #  ##     #################################################################      ",
	"    ##################################################################################################################  ",
	"########################################################################################################################",
}
